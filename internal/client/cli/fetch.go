package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/mediavault/internal/flagx"
)

// Fetch downloads one media object through the server and writes the
// decrypted artifact to disk.
//
// Supported flags:
//
//	-u string   location of the encrypted media object
//	-m string   media category: image, video, audio or document
//	-o string   output file, defaults to a name under the output dir
//	-s string   base64 media secret, prompted without echo when omitted
func (a *App) Fetch(ctx context.Context, args []string) error {
	fetchArgs := flagx.FilterArgs(args, []string{"-u", "-m", "-o", "-s"})

	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	mediaURL := fs.String("u", "", "location of the encrypted media object")
	category := fs.String("m", "", "media category: image, video, audio or document")
	output := fs.String("o", "", "output file")
	secret := fs.String("s", "", "base64 media secret")

	if err := fs.Parse(fetchArgs); err != nil {
		return err
	}

	if *mediaURL == "" {
		v, err := GetSimpleText(a.reader, "Media URL", a.out)
		if err != nil {
			return err
		}
		*mediaURL = v
	}

	if *category == "" {
		v, err := GetSimpleText(a.reader, "Media category (image, video, audio, document)", a.out)
		if err != nil {
			return err
		}
		*category = v
	}

	secretB64 := *secret
	if secretB64 == "" {
		pw, err := GetSecret(a.out)
		if err != nil {
			return err
		}
		secretB64 = string(pw)
	}

	artifact, err := a.api.FetchMedia(ctx, *mediaURL, secretB64, *category)
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		name := artifact.Filename
		if name == "" {
			name = "media.bin"
		}
		path = filepath.Join(a.config.OutputDir, name)
	}

	if err := os.WriteFile(path, artifact.Data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintf(a.out, "Saved %s (%d bytes)\n", path, len(artifact.Data))
	if artifact.StagedName != "" {
		fmt.Fprintf(a.out, "Staged on server as %s\n", artifact.StagedName)
	}
	return nil
}

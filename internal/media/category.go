package media

// Category is the closed set of media categories the pipeline accepts. Every
// switch over it handles all four values plus an explicit error; nothing
// defaults silently.
type Category int

const (
	CategoryImage Category = iota
	CategoryVideo
	CategoryAudio
	CategoryDocument
)

// ParseCategory maps the wire-level category string to a Category. Anything
// outside the known set is a validation error, never a fallback.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "image":
		return CategoryImage, nil
	case "video":
		return CategoryVideo, nil
	case "audio":
		return CategoryAudio, nil
	case "document":
		return CategoryDocument, nil
	default:
		return 0, validationErrorf("unknown media category %q", s)
	}
}

func (c Category) String() string {
	switch c {
	case CategoryImage:
		return "image"
	case CategoryVideo:
		return "video"
	case CategoryAudio:
		return "audio"
	case CategoryDocument:
		return "document"
	default:
		return "unknown"
	}
}

// domainInfo returns the fixed domain-separation string mixed into key
// derivation, so keys for different categories are independent even when
// derived from the same secret.
func (c Category) domainInfo() ([]byte, error) {
	switch c {
	case CategoryImage:
		return []byte("MediaVault Image Keys"), nil
	case CategoryVideo:
		return []byte("MediaVault Video Keys"), nil
	case CategoryAudio:
		return []byte("MediaVault Audio Keys"), nil
	case CategoryDocument:
		return []byte("MediaVault Document Keys"), nil
	default:
		return nil, validationErrorf("unknown media category")
	}
}

// ContentType returns the MIME type served for artifacts of this category.
func (c Category) ContentType() (string, error) {
	switch c {
	case CategoryImage:
		return "image/jpeg", nil
	case CategoryVideo:
		return "video/mp4", nil
	case CategoryAudio:
		return "audio/mpeg", nil
	case CategoryDocument:
		return "application/octet-stream", nil
	default:
		return "", validationErrorf("unknown media category")
	}
}

// Extension returns the file extension, dot included, for this category.
func (c Category) Extension() (string, error) {
	switch c {
	case CategoryImage:
		return ".jpg", nil
	case CategoryVideo:
		return ".mp4", nil
	case CategoryAudio:
		return ".mp3", nil
	case CategoryDocument:
		return ".bin", nil
	default:
		return "", validationErrorf("unknown media category")
	}
}

// Filename returns the suggested artifact filename, computed solely from the
// category.
func (c Category) Filename() (string, error) {
	ext, err := c.Extension()
	if err != nil {
		return "", err
	}
	return "media" + ext, nil
}

// CategoryForExtension is the inverse of Extension, used when serving staged
// artifacts back by name. Unknown extensions fail the same way unknown
// categories do.
func CategoryForExtension(ext string) (Category, error) {
	switch ext {
	case ".jpg":
		return CategoryImage, nil
	case ".mp4":
		return CategoryVideo, nil
	case ".mp3":
		return CategoryAudio, nil
	case ".bin":
		return CategoryDocument, nil
	default:
		return 0, validationErrorf("unknown media extension %q", ext)
	}
}

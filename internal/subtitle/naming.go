package subtitle

import (
	"path/filepath"
	"strings"

	"plexsubs/internal/language"
)

// UnknownCodec is the codec segment used when a stream records no codec.
const UnknownCodec = "unknown"

var separatorReplacer = strings.NewReplacer("/", "_", `\`, "_")

// FileName derives "{base}.{language}[.forced].{codec}" from the source media
// path, where base is the media file name without its extension.
func FileName(meta Metadata) string {
	_, base := splitSourcePath(meta.SourcePath)
	name := trimExtension(base)

	var b strings.Builder
	b.Grow(len(name) + len(meta.Language) + len(meta.Codec) + 10)
	b.WriteString(name)
	b.WriteByte('.')
	b.WriteString(language.ForFilename(meta.Language))
	if meta.Forced {
		b.WriteString(".forced")
	}
	b.WriteByte('.')
	b.WriteString(codecSegment(meta.Codec))
	return b.String()
}

// codecSegment keeps the codec inside a single path element.
func codecSegment(codec string) string {
	codec = strings.TrimSpace(codec)
	if codec == "" {
		return UnknownCodec
	}
	return separatorReplacer.Replace(codec)
}

// TargetPath joins FileName with outputDir, or with the directory of the
// source media file when outputDir is empty (inline mode). The source
// directory keeps the separator Plex recorded so Windows libraries stay intact.
func TargetPath(meta Metadata, outputDir string) string {
	name := FileName(meta)
	if outputDir != "" {
		return filepath.Join(outputDir, name)
	}
	dir, _ := splitSourcePath(meta.SourcePath)
	if dir == "" {
		return name
	}
	return dir + name
}

// splitSourcePath splits after the last '/' or '\'. dir keeps its trailing
// separator.
func splitSourcePath(path string) (dir, base string) {
	idx := strings.LastIndexAny(path, `/\`)
	if idx < 0 {
		return "", path
	}
	return path[:idx+1], path[idx+1:]
}

func trimExtension(base string) string {
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return base
	}
	// Leading dots are not extension separators (".hidden" stays intact).
	if strings.TrimLeft(base[:idx], ".") == "" {
		return base
	}
	return base[:idx]
}

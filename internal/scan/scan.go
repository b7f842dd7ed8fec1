package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"mediapress/internal/fileutil"
)

// Kind classifies a file by what codec path can handle it.
type Kind int

const (
	KindOpaque Kind = iota
	KindImage
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "opaque"
	}
}

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".heic": {},
}

var videoExtensions = map[string]struct{}{
	".mp4": {},
	".mov": {},
	".3gp": {},
	".m4v": {},
	".avi": {},
	".mkv": {},
}

// Classify maps a path to the codec kind by its lowercase extension.
func Classify(path string) Kind {
	ext := fileutil.LowerExt(path)
	if _, ok := imageExtensions[ext]; ok {
		return KindImage
	}
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo
	}
	return KindOpaque
}

// File is one regular file found under the input root.
type File struct {
	Path string // absolute path
	Rel  string // path relative to the tree root
	Size int64
	Kind Kind
}

// Tree is the result of walking a root directory.
type Tree struct {
	Root  string
	Files []File
}

// Walk enumerates every regular file under root. Symlinks are not followed.
func Walk(root string) (*Tree, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	tree := &Tree{Root: abs}
	err = filepath.WalkDir(abs, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		tree.Files = append(tree.Files, File{
			Path: path,
			Rel:  rel,
			Size: info.Size(),
			Kind: Classify(path),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", abs, err)
	}
	sort.Slice(tree.Files, func(i, j int) bool { return tree.Files[i].Rel < tree.Files[j].Rel })
	return tree, nil
}

// TotalSize sums the sizes of all files in the tree.
func (t *Tree) TotalSize() int64 {
	var total int64
	for _, f := range t.Files {
		total += f.Size
	}
	return total
}

// Collisions returns canonical names (relative path minus extension) mapped to
// the files that share them. Two inputs with the same canonical name would
// land on the same output path once codecs normalize extensions, so any entry
// with more than one file aborts the run.
func (t *Tree) Collisions() map[string][]string {
	byCanonical := make(map[string][]string)
	for _, f := range t.Files {
		key := fileutil.StripExt(f.Rel)
		byCanonical[key] = append(byCanonical[key], f.Rel)
	}
	collisions := make(map[string][]string)
	for key, names := range byCanonical {
		if len(names) > 1 {
			sort.Strings(names)
			collisions[key] = names
		}
	}
	return collisions
}

// MirrorDirs recreates the directory skeleton of srcRoot under dstRoot without
// copying any files. The temp subdirectories exist mainly to dodge name
// collisions between sibling directories.
func MirrorDirs(srcRoot, dstRoot string) error {
	if err := os.MkdirAll(dstRoot, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dstRoot, err)
	}
	return filepath.WalkDir(srcRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		return os.MkdirAll(filepath.Join(dstRoot, rel), 0o755)
	})
}

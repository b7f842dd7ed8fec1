package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"mediapress/internal/fileutil"
	"mediapress/internal/pipeline"
	"mediapress/internal/scan"
)

const summaryRounding = 100 * time.Millisecond

// Group is one aggregated row: every file sharing a directory or extension.
type Group struct {
	Key         string
	Files       int
	InputBytes  int64
	OutputBytes int64
}

// Saved returns the byte reduction for the group.
func (g Group) Saved() int64 {
	return g.InputBytes - g.OutputBytes
}

// SavedPercent returns the reduction as a percentage of the input size.
func (g Group) SavedPercent() float64 {
	if g.InputBytes == 0 {
		return 0
	}
	return 100 * float64(g.Saved()) / float64(g.InputBytes)
}

// ByDirectory aggregates results by the directory of the input file.
func ByDirectory(results []pipeline.FileResult) []Group {
	return aggregate(results, func(r pipeline.FileResult) string {
		dir := filepath.Dir(r.Rel)
		if dir == "." {
			return "(root)"
		}
		return dir
	})
}

// ByExtension aggregates results by the lowercased input extension.
func ByExtension(results []pipeline.FileResult) []Group {
	return aggregate(results, func(r pipeline.FileResult) string {
		ext := fileutil.LowerExt(r.Rel)
		if ext == "" {
			return "(none)"
		}
		return ext
	})
}

func aggregate(results []pipeline.FileResult, key func(pipeline.FileResult) string) []Group {
	byKey := make(map[string]*Group)
	for _, r := range results {
		k := key(r)
		g, ok := byKey[k]
		if !ok {
			g = &Group{Key: k}
			byKey[k] = g
		}
		g.Files++
		g.InputBytes += r.InputSize
		g.OutputBytes += r.OutputSize
	}

	groups := make([]Group, 0, len(byKey))
	for _, g := range byKey {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

// RenderRun formats the complete post-run report.
func RenderRun(summary *pipeline.Summary) string {
	var b strings.Builder

	b.WriteString("Savings by directory\n")
	b.WriteString(renderGroups(ByDirectory(summary.Results), "Directory"))
	b.WriteString("\n\nSavings by extension\n")
	b.WriteString(renderGroups(ByExtension(summary.Results), "Extension"))

	total := Group{InputBytes: summary.InputBytes, OutputBytes: summary.OutputBytes}
	b.WriteString(fmt.Sprintf("\n\n%d files processed in %s: %d compressed, %d copied\n",
		len(summary.Results), summary.Elapsed.Round(summaryRounding), summary.Compressed, summary.Copied))
	b.WriteString(fmt.Sprintf("%s in, %s out, saved %s (%.1f%%)\n",
		humanize.IBytes(uint64(summary.InputBytes)),
		humanize.IBytes(uint64(summary.OutputBytes)),
		humanize.IBytes(uint64(max(total.Saved(), 0))),
		total.SavedPercent()))
	return b.String()
}

func renderGroups(groups []Group, label string) string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Key,
			fmt.Sprintf("%d", g.Files),
			humanize.IBytes(uint64(g.InputBytes)),
			humanize.IBytes(uint64(g.OutputBytes)),
			fmt.Sprintf("%.1f%%", g.SavedPercent()),
		})
	}
	return renderTable([]string{label, "Files", "In", "Out", "Saved"}, rows)
}

// RenderScan formats the pre-run inventory of an input tree.
func RenderScan(tree *scan.Tree) string {
	type bucket struct {
		files int
		bytes int64
	}
	byKind := make(map[scan.Kind]*bucket)
	for _, f := range tree.Files {
		b, ok := byKind[f.Kind]
		if !ok {
			b = &bucket{}
			byKind[f.Kind] = b
		}
		b.files++
		b.bytes += f.Size
	}

	rows := make([][]string, 0, len(byKind))
	for _, kind := range []scan.Kind{scan.KindImage, scan.KindVideo, scan.KindOpaque} {
		b, ok := byKind[kind]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			kind.String(),
			fmt.Sprintf("%d", b.files),
			humanize.IBytes(uint64(b.bytes)),
		})
	}

	var out strings.Builder
	out.WriteString(renderTable([]string{"Kind", "Files", "Size"}, rows))
	out.WriteString("\n\nBy extension\n")
	out.WriteString(renderSizeGroups(treeGroups(tree, func(f scan.File) string {
		ext := fileutil.LowerExt(f.Rel)
		if ext == "" {
			return "(none)"
		}
		return ext
	}), "Extension"))
	out.WriteString("\n\nBy directory\n")
	out.WriteString(renderSizeGroups(treeGroups(tree, func(f scan.File) string {
		dir := filepath.Dir(f.Rel)
		if dir == "." {
			return "(root)"
		}
		return dir
	}), "Directory"))
	out.WriteString(fmt.Sprintf("\n\n%d files, %s total\n",
		len(tree.Files), humanize.IBytes(uint64(tree.TotalSize()))))
	return out.String()
}

func treeGroups(tree *scan.Tree, key func(scan.File) string) []Group {
	byKey := make(map[string]*Group)
	for _, f := range tree.Files {
		k := key(f)
		g, ok := byKey[k]
		if !ok {
			g = &Group{Key: k}
			byKey[k] = g
		}
		g.Files++
		g.InputBytes += f.Size
	}
	groups := make([]Group, 0, len(byKey))
	for _, g := range byKey {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

func renderSizeGroups(groups []Group, label string) string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Key,
			fmt.Sprintf("%d", g.Files),
			humanize.IBytes(uint64(g.InputBytes)),
		})
	}
	return renderTable([]string{label, "Files", "Size"}, rows)
}

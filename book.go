package main

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
)

// Page progression: the physical direction "next" maps to.
const (
	ProgressionLR = "lr"
	ProgressionRL = "rl"
)

// PagePath locates a page image on disk or inside an archive.
type PagePath struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files
	EntryPath   string // Empty for regular files
}

// Page is the per-leaf metadata the viewer navigates over. Pages in an
// unviewable run all point back at the run's first index so the run
// can be skipped as one unit.
type Page struct {
	Index            int
	Label            string // book-native page number, e.g. "3"
	Viewable         bool
	UnviewablesStart int // first index of this page's run; -1 when viewable
	Path             PagePath
}

// Book holds the ordered page sequence and its reading metadata.
type Book struct {
	pages       []Page
	titleLeaf   int
	progression string
	id          string
}

// BookOptions configure assembly of a Book from collected page paths.
type BookOptions struct {
	TitleLeaf   int
	Progression string
	// Unviewable lists index ranges withheld from full view,
	// e.g. "10-13,20-22".
	Unviewable string
}

// NewBook builds a Book from ordered page paths.
func NewBook(paths []PagePath, opts BookOptions) *Book {
	b := &Book{
		pages:       make([]Page, len(paths)),
		progression: ProgressionLR,
	}
	if opts.Progression == ProgressionRL {
		b.progression = ProgressionRL
	}
	if opts.TitleLeaf > 0 && opts.TitleLeaf < len(paths) {
		b.titleLeaf = opts.TitleLeaf
	}
	for i, p := range paths {
		b.pages[i] = Page{
			Index:            i,
			Label:            strconv.Itoa(i + 1),
			Viewable:         true,
			UnviewablesStart: -1,
			Path:             p,
		}
	}
	b.applyUnviewableRanges(opts.Unviewable)
	b.id = computeBookID(paths)
	return b
}

// applyUnviewableRanges marks the listed index ranges unviewable and
// stamps each page with the start of its maximal unviewable run.
func (b *Book) applyUnviewableRanges(spec string) {
	if spec == "" {
		return
	}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, err := parseIndexRange(part)
		if err != nil {
			log.Printf("Warning: ignoring unviewable range %q: %v", part, err)
			continue
		}
		for i := lo; i <= hi && i < len(b.pages); i++ {
			if i >= 0 {
				b.pages[i].Viewable = false
			}
		}
	}
	// Second pass: compute run starts over the merged ranges.
	runStart := -1
	for i := range b.pages {
		if b.pages[i].Viewable {
			runStart = -1
			continue
		}
		if runStart < 0 {
			runStart = i
		}
		b.pages[i].UnviewablesStart = runStart
	}
}

func parseIndexRange(s string) (int, int, error) {
	lo, hi, found := strings.Cut(s, "-")
	a, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, err
	}
	if !found {
		return a, a, nil
	}
	z, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return 0, 0, err
	}
	if z < a {
		return 0, 0, fmt.Errorf("range is backwards")
	}
	return a, z, nil
}

// computeBookID derives a stable identity from the page paths, used to
// key persisted per-book state.
func computeBookID(paths []PagePath) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d\n", len(paths))
	for _, p := range paths {
		io.WriteString(h, p.Path)
		io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// ID returns the stable book identity.
func (b *Book) ID() string { return b.id }

// GetNumLeafs returns the page count.
func (b *Book) GetNumLeafs() int { return len(b.pages) }

// GetPage returns the page at index.
func (b *Book) GetPage(index int) (Page, bool) {
	if index < 0 || index >= len(b.pages) {
		return Page{}, false
	}
	return b.pages[index], true
}

// GetPageNum returns the book-native page number string for an index.
func (b *Book) GetPageNum(index int) string {
	if index < 0 || index >= len(b.pages) {
		return ""
	}
	return b.pages[index].Label
}

// LeafNumToIndex maps a 1-based leaf number to a page index, or -1.
func (b *Book) LeafNumToIndex(leaf int) int {
	idx := leaf - 1
	if idx < 0 || idx >= len(b.pages) {
		return -1
	}
	return idx
}

// ParsePageString resolves a page token into an index, or -1. The
// synthetic form "n<index>" addresses a raw index, "leaf<num>" a leaf
// number, and anything else is matched against page labels with an
// optional "p" prefix.
func (b *Book) ParsePageString(s string) int {
	if rest, ok := strings.CutPrefix(s, "n"); ok {
		if idx, err := strconv.Atoi(rest); err == nil {
			if idx >= 0 && idx < len(b.pages) {
				return idx
			}
			return -1
		}
	}
	if rest, ok := strings.CutPrefix(s, "leaf"); ok {
		if leaf, err := strconv.Atoi(rest); err == nil {
			return b.LeafNumToIndex(leaf)
		}
	}
	label := strings.TrimPrefix(s, "p")
	for _, p := range b.pages {
		if p.Label == label {
			return p.Index
		}
	}
	return -1
}

// TitleLeafIndex is the designated title page, the base default for
// startup navigation.
func (b *Book) TitleLeafIndex() int { return b.titleLeaf }

// PageProgression returns ProgressionLR or ProgressionRL.
func (b *Book) PageProgression() string { return b.progression }

// nextViewableIndex returns the first viewable index at or after
// start, skipping a run of unviewable pages as one unit. Returns -1
// when the book ends inside the run.
func (b *Book) nextViewableIndex(start int) int {
	for i := start; i < len(b.pages); i++ {
		if b.pages[i].Viewable {
			return i
		}
	}
	return -1
}

// Page collection, shared by main and the tests.

func isArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

func isSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

func extractPagesFromZip(archivePath string) ([]PagePath, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var pages []PagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			pages = append(pages, PagePath{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return pages, nil
}

func extractPagesFromRar(archivePath string) ([]PagePath, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var pages []PagePath
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir && isSupportedExt(header.Name) {
			pages = append(pages, PagePath{
				Path:        archivePath + ":" + header.Name,
				ArchivePath: archivePath,
				EntryPath:   header.Name,
			})
		}
	}
	return pages, nil
}

func extractPagesFrom7z(archivePath string) ([]PagePath, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var pages []PagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			pages = append(pages, PagePath{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return pages, nil
}

func processArchive(archivePath string) ([]PagePath, error) {
	var pages []PagePath
	var err error
	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		pages, err = extractPagesFromZip(archivePath)
	case ".rar":
		pages, err = extractPagesFromRar(archivePath)
	case ".7z":
		pages, err = extractPagesFrom7z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", archivePath)
	}
	if err != nil {
		log.Printf("Error: Failed to process archive %s: %v", archivePath, err)
		return nil, err
	}
	return pages, nil
}

// collectPages gathers page images from files, directories, and
// archives, ordering each group with the configured sort strategy.
func collectPages(args []string, sortMethod int) ([]PagePath, error) {
	var list []PagePath
	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			var dirPages []PagePath
			err := filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if fi.IsDir() {
					return nil
				}
				if isSupportedExt(path) {
					dirPages = append(dirPages, PagePath{Path: path})
				} else if isArchiveExt(path) {
					archivePages, err := processArchive(path)
					if err == nil {
						dirPages = append(dirPages, sortPagePaths(archivePages, sortMethod)...)
					} else {
						log.Printf("Warning: Skipping problematic archive %s: %v", path, err)
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			list = append(list, sortPagePaths(dirPages, sortMethod)...)
		} else if isSupportedExt(p) {
			list = append(list, PagePath{Path: p})
		} else if isArchiveExt(p) {
			archivePages, err := processArchive(p)
			if err == nil {
				list = append(list, sortPagePaths(archivePages, sortMethod)...)
			} else {
				log.Printf("Warning: Skipping problematic archive %s: %v", p, err)
			}
		}
	}
	return list, nil
}

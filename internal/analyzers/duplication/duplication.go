// Package duplication detects repeated code fragments with sliding-window
// block hashing. Block identity is the MD5 of the normalized block text, an
// accepted heuristic: hash collisions trade exactness for speed.
package duplication

import (
	"crypto/md5" //nolint:gosec // content fingerprinting, not security.
	"encoding/hex"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultMinBlockSize is the default window size in lines.
const DefaultMinBlockSize = 5

// Interpretation band boundaries for the global duplication percentage.
const (
	bandExcellent = 5.0
	bandGood      = 15.0
	bandModerate  = 25.0
)

// previewMaxLen caps the content preview stored per duplicate cluster.
const previewMaxLen = 200

// percent converts a ratio to a percentage.
const percent = 100.0

// lineCommentPattern strips single-line and HTML comments during
// normalization.
var lineCommentPattern = regexp.MustCompile(`//.*|#.*|<!--.*?-->`)

// spacePattern collapses internal whitespace runs.
var spacePattern = regexp.MustCompile(`\s+`)

// Block is one hashed window of normalized lines inside a file.
type Block struct {
	Hash            string `json:"hash"`
	Content         string `json:"content"`
	OriginalContent string `json:"original_content"`
	FilePath        string `json:"file_path"`
	StartLine       int    `json:"start_line"`
	EndLine         int    `json:"end_line"`
	Size            int    `json:"size"`
}

// Cluster groups all occurrences of one duplicated block hash.
type Cluster struct {
	Occurrences    int     `json:"occurrences"`
	Blocks         []Block `json:"blocks"`
	Size           int     `json:"size"`
	ContentPreview string  `json:"content_preview"`
	DriftSummary   string  `json:"drift_summary,omitempty"`
}

// MostDuplicated identifies the file with the highest duplicated share.
type MostDuplicated struct {
	Archivo    string  `json:"archivo"`
	Porcentaje float64 `json:"porcentaje"`
}

// Report is the duplication analysis payload. Key names are frozen: the
// report renderers pattern-match on them.
type Report struct {
	PorcentajeGlobal   float64            `json:"porcentaje_global"`
	BloquesEncontrados int                `json:"bloques_encontrados"`
	TotalOcurrencias   int                `json:"total_ocurrencias"`
	LineasDuplicadas   int                `json:"lineas_duplicadas"`
	ArchivosAfectados  []string           `json:"archivos_afectados"`
	TotalArchivos      int                `json:"total_archivos"`
	MayorDuplicacion   *MostDuplicated    `json:"mayor_duplicacion"`
	Duplicates         map[string]Cluster `json:"duplicates_details"`
	Summary            string             `json:"summary"`
	Error              string             `json:"error,omitempty"`
}

// Detector finds duplicated code blocks across a set of files.
type Detector struct {
	minBlockSize     int
	ignoreWhitespace bool
}

// NewDetector creates a detector with the given minimum block size.
// Sizes below 1 fall back to the default.
func NewDetector(minBlockSize int) *Detector {
	if minBlockSize < 1 {
		minBlockSize = DefaultMinBlockSize
	}

	return &Detector{
		minBlockSize:     minBlockSize,
		ignoreWhitespace: true,
	}
}

// FindDuplicates analyzes all files and never returns an error: any failure
// degrades to a zeroed report carrying the error message.
func (d *Detector) FindDuplicates(files map[string]string) *Report {
	report, err := d.analyze(files)
	if err != nil {
		return &Report{
			ArchivosAfectados: []string{},
			TotalArchivos:     len(files),
			Duplicates:        map[string]Cluster{},
			Summary:           "Error en el análisis de duplicación",
			Error:             err.Error(),
		}
	}

	return report
}

// analyze runs the full detection pass.
func (d *Detector) analyze(files map[string]string) (*Report, error) {
	blocksByHash := make(map[string][]Block)

	for path, content := range files {
		if strings.TrimSpace(content) == "" {
			continue
		}

		for _, block := range d.extractBlocks(content, path) {
			blocksByHash[block.Hash] = append(blocksByHash[block.Hash], block)
		}
	}

	clusters := d.buildClusters(blocksByHash)

	duplicatedLines := 0
	affected := make(map[string]struct{})
	totalOccurrences := 0

	for _, cluster := range clusters {
		// Only the extra copies count as duplication; the first
		// occurrence is the original.
		duplicatedLines += cluster.Size * (cluster.Occurrences - 1)
		totalOccurrences += cluster.Occurrences

		for _, block := range cluster.Blocks {
			affected[block.FilePath] = struct{}{}
		}
	}

	totalLines := 0
	for _, content := range files {
		totalLines += len(strings.Split(content, "\n"))
	}

	percentage := round2(float64(duplicatedLines) / float64(max(totalLines, 1)) * percent)

	report := &Report{
		PorcentajeGlobal:   percentage,
		BloquesEncontrados: len(clusters),
		TotalOcurrencias:   totalOccurrences,
		LineasDuplicadas:   duplicatedLines,
		ArchivosAfectados:  sortedKeys(affected),
		TotalArchivos:      len(files),
		MayorDuplicacion:   d.findMostDuplicated(clusters, files),
		Duplicates:         clusters,
		Summary:            d.summarize(len(clusters), percentage, len(affected)),
	}

	return report, nil
}

// extractBlocks slides a window of minBlockSize lines across the file. Window
// positions are intentionally not deduplicated within a file, so a file can
// duplicate against itself.
func (d *Detector) extractBlocks(content, path string) []Block {
	lines := strings.Split(content, "\n")

	var blocks []Block

	for i := 0; i+d.minBlockSize <= len(lines); i++ {
		normalized := make([]string, 0, d.minBlockSize)
		original := make([]string, 0, d.minBlockSize)

		for j := 0; j < d.minBlockSize; j++ {
			line := lines[i+j]

			norm := d.normalizeLine(line)
			if strings.TrimSpace(norm) != "" {
				normalized = append(normalized, norm)
				original = append(original, line)
			}
		}

		// Blank and comment-only lines shrink the window; only windows
		// that stay full are significant.
		if len(normalized) < d.minBlockSize {
			continue
		}

		blockContent := strings.Join(normalized, "\n")
		sum := md5.Sum([]byte(blockContent)) //nolint:gosec // fingerprint only.

		blocks = append(blocks, Block{
			Hash:            hex.EncodeToString(sum[:]),
			Content:         blockContent,
			OriginalContent: strings.Join(original, "\n"),
			FilePath:        path,
			StartLine:       i + 1,
			EndLine:         i + d.minBlockSize,
			Size:            len(normalized),
		})
	}

	return blocks
}

// normalizeLine strips line comments and collapses whitespace.
func (d *Detector) normalizeLine(line string) string {
	line = lineCommentPattern.ReplaceAllString(line, "")

	if d.ignoreWhitespace {
		line = spacePattern.ReplaceAllString(strings.TrimSpace(line), " ")
	}

	return line
}

// buildClusters keeps only hash groups with at least two occurrences.
func (d *Detector) buildClusters(blocksByHash map[string][]Block) map[string]Cluster {
	clusters := make(map[string]Cluster)

	for hash, blocks := range blocksByHash {
		if len(blocks) < 2 {
			continue
		}

		sort.Slice(blocks, func(i, j int) bool {
			if blocks[i].FilePath != blocks[j].FilePath {
				return blocks[i].FilePath < blocks[j].FilePath
			}

			return blocks[i].StartLine < blocks[j].StartLine
		})

		clusters[hash] = Cluster{
			Occurrences:    len(blocks),
			Blocks:         blocks,
			Size:           blocks[0].Size,
			ContentPreview: preview(blocks[0].Content),
			DriftSummary:   driftSummary(blocks),
		}
	}

	return clusters
}

// driftSummary reports how the original (pre-normalization) texts of the
// first two occurrences differ. Identical originals produce no summary.
func driftSummary(blocks []Block) string {
	if len(blocks) < 2 {
		return ""
	}

	left, right := blocks[0].OriginalContent, blocks[1].OriginalContent
	if left == right {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(left, right, false)

	inserted, deleted := 0, 0

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len(d.Text)
		case diffmatchpatch.DiffDelete:
			deleted += len(d.Text)
		case diffmatchpatch.DiffEqual:
		}
	}

	return fmt.Sprintf("las copias difieren solo en formato (+%d/-%d caracteres)", inserted, deleted)
}

// findMostDuplicated picks the file with the highest summed duplicated block
// size relative to its own line count.
func (d *Detector) findMostDuplicated(clusters map[string]Cluster, files map[string]string) *MostDuplicated {
	perFile := make(map[string]int)

	for _, cluster := range clusters {
		for _, block := range cluster.Blocks {
			perFile[block.FilePath] += cluster.Size
		}
	}

	if len(perFile) == 0 {
		return nil
	}

	best, bestLines := "", 0

	for _, path := range sortedIntKeys(perFile) {
		if perFile[path] > bestLines {
			best, bestLines = path, perFile[path]
		}
	}

	fileLines := len(strings.Split(files[best], "\n"))

	return &MostDuplicated{
		Archivo:    best,
		Porcentaje: round2(float64(bestLines) / float64(max(fileLines, 1)) * percent),
	}
}

// summarize assembles the one-line interpretation summary.
func (d *Detector) summarize(clusterCount int, percentage float64, affectedFiles int) string {
	level, description := interpret(percentage)

	return fmt.Sprintf("%s: %s. %d bloques duplicados en %d archivos.",
		level, description, clusterCount, affectedFiles)
}

// interpret maps the global percentage to its interpretation band.
func interpret(percentage float64) (level, description string) {
	switch {
	case percentage < bandExcellent:
		return "Excelente", "Muy poca duplicación detectada"
	case percentage < bandGood:
		return "Bueno", "Duplicación dentro de límites aceptables"
	case percentage < bandModerate:
		return "Moderado", "Duplicación moderada, considere refactorización"
	default:
		return "Alto", "Alta duplicación, refactorización recomendada"
	}
}

// preview truncates cluster content for display.
func preview(content string) string {
	if len(content) > previewMaxLen {
		return content[:previewMaxLen] + "..."
	}

	return content
}

// round2 rounds to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sortedKeys returns the set members in lexicographic order.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// sortedIntKeys returns the map keys in lexicographic order.
func sortedIntKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

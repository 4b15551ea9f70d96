package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/arbor/internal/grow"
	"github.com/san-kum/arbor/internal/vecmath"
)

const (
	metadataFile = "metadata.json"
	branchesFile = "branches.csv"
	leavesFile   = "leaves.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

var branchHeader = []string{
	"chain", "index", "order", "thickness",
	"start_x", "start_y", "start_z", "start_bx", "start_by", "start_bz", "start_nx", "start_ny", "start_nz",
	"end_x", "end_y", "end_z", "end_bx", "end_by", "end_bz", "end_nx", "end_ny", "end_nz",
}

var leafHeader = []string{"x", "y", "z", "dx", "dy", "dz", "nx", "ny", "nz"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset,omitempty"`
	TreeType   int                `json:"tree_type"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Cycles     int                `json:"cycles"`
	InitCycles int                `json:"init_cycles"`
	Orders     []grow.Params      `json:"orders"`
	Chains     int                `json:"chains"`
	Segments   int                `json:"segments"`
	Leaves     int                `json:"leaves"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Run is a loaded tree: its metadata plus the grown chains and leaves.
type Run struct {
	Meta   RunMetadata
	Chains [][]grow.Branch
	Leaves []grow.Leaf
}

// Save writes a run directory and returns its id. ID, Timestamp, Chains,
// Segments and Leaves in meta are filled in from the tree.
func (s *Store) Save(meta RunMetadata, chains [][]grow.Branch, leaves []grow.Leaf) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("tree_%d_%d", meta.Seed, now.UnixNano())
	meta.Timestamp = now
	meta.Chains = len(chains)
	meta.Leaves = len(leaves)
	meta.Segments = 0
	for _, c := range chains {
		meta.Segments += len(c)
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, branchesFile), func(w *csv.Writer) error {
		return writeBranches(w, chains)
	}); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, leavesFile), func(w *csv.Writer) error {
		return writeLeaves(w, leaves)
	}); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns the metadata of every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadRun reads the metadata, chains and leaves of a run. Chains that never
// grew a segment are restored as empty chains.
func (s *Store) LoadRun(runID string) (*Run, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	runDir := filepath.Join(s.baseDir, runID)

	chains := make([][]grow.Branch, meta.Chains)
	for i := range chains {
		chains[i] = make([]grow.Branch, 0)
	}
	err = readCSV(filepath.Join(runDir, branchesFile), len(branchHeader), func(rec []float64) error {
		chain := int(rec[0])
		if chain < 0 || chain >= len(chains) {
			return fmt.Errorf("chain %d out of range", chain)
		}
		chains[chain] = append(chains[chain], grow.Branch{
			Order:         int(rec[2]),
			Thickness:     float32(rec[3]),
			StartPosition: vec(rec[4:7]),
			StartB:        vec(rec[7:10]),
			StartN:        vec(rec[10:13]),
			EndPosition:   vec(rec[13:16]),
			EndB:          vec(rec[16:19]),
			EndN:          vec(rec[19:22]),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	leaves := make([]grow.Leaf, 0, meta.Leaves)
	err = readCSV(filepath.Join(runDir, leavesFile), len(leafHeader), func(rec []float64) error {
		leaves = append(leaves, grow.Leaf{
			Position:  vec(rec[0:3]),
			Direction: vec(rec[3:6]),
			Normal:    vec(rec[6:9]),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Run{Meta: *meta, Chains: chains, Leaves: leaves}, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, fill func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeBranches(w *csv.Writer, chains [][]grow.Branch) error {
	if err := w.Write(branchHeader); err != nil {
		return err
	}
	for ci, chain := range chains {
		for i, b := range chain {
			row := []string{strconv.Itoa(ci), strconv.Itoa(i), strconv.Itoa(b.Order), formatFloat(b.Thickness)}
			for _, v := range []vecmath.Vec3{b.StartPosition, b.StartB, b.StartN, b.EndPosition, b.EndB, b.EndN} {
				row = appendVec(row, v)
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeLeaves(w *csv.Writer, leaves []grow.Leaf) error {
	if err := w.Write(leafHeader); err != nil {
		return err
	}
	for _, l := range leaves {
		row := make([]string, 0, len(leafHeader))
		for _, v := range []vecmath.Vec3{l.Position, l.Direction, l.Normal} {
			row = appendVec(row, v)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// readCSV parses every data row as floats and hands it to fn, skipping the
// header.
func readCSV(path string, fields int, fn func(rec []float64) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = fields
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}

	rec := make([]float64, fields)
	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		for i, field := range row {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			rec[i] = v
		}
		if err := fn(rec); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
}

// formatFloat writes the shortest text that parses back to the same float32.
func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func appendVec(row []string, v vecmath.Vec3) []string {
	return append(row, formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
}

func vec(v []float64) vecmath.Vec3 {
	return vecmath.Vec3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}
}

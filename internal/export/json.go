package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/arbor/internal/grow"
)

// TreeJSON is the JSON document written by WriteJSON.
type TreeJSON struct {
	Seed   int64           `json:"seed"`
	Chains [][]grow.Branch `json:"chains"`
	Leaves []grow.Leaf     `json:"leaves"`
}

func WriteJSON(w io.Writer, seed int64, chains [][]grow.Branch, leaves []grow.Leaf) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(TreeJSON{Seed: seed, Chains: chains, Leaves: leaves})
}

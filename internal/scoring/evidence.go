package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

// EvidenceSource reports how many reference materials and content blocks back
// a record's application. The profile/evidence system that maintains this is
// an external collaborator; the engine only consumes the count.
type EvidenceSource interface {
	MaterialsCount(r *opportunity.Record) int
}

type recordEvidence struct{}

// RecordEvidence reads the coverage count the record itself carries.
func RecordEvidence() EvidenceSource {
	return recordEvidence{}
}

func (recordEvidence) MaterialsCount(r *opportunity.Record) int {
	return r.Submission.MaterialsCount
}

type fileEvidence struct {
	counts   map[string]int
	fallback EvidenceSource
}

// FileEvidence reads per-id coverage counts from a YAML map and falls back to
// the record's own count for ids the file does not mention.
func FileEvidence(path string, fallback EvidenceSource) (EvidenceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("evidence file: %w", err)
	}

	counts := make(map[string]int)
	if err := yaml.Unmarshal(data, &counts); err != nil {
		return nil, fmt.Errorf("evidence file: %w", err)
	}
	for id, count := range counts {
		if count < 0 {
			return nil, fmt.Errorf("evidence file: negative count for %s", id)
		}
	}

	if fallback == nil {
		fallback = RecordEvidence()
	}
	return &fileEvidence{counts: counts, fallback: fallback}, nil
}

func (f *fileEvidence) MaterialsCount(r *opportunity.Record) int {
	if count, ok := f.counts[r.ID]; ok {
		return count
	}
	return f.fallback.MaterialsCount(r)
}

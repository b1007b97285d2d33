package quality

import (
	"encoding/json"

	"dqlens/domain/core"
)

// Fingerprint hashes the canonical JSON form of the report. Because the
// report carries no wall-clock or random fields, two analyses of the same
// dataset with the same catalog and seed produce equal fingerprints.
func (r *Report) Fingerprint() (core.Fingerprint, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return core.NewFingerprint(data), nil
}

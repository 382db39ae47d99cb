package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Digest returns the hex SHA-256 of data. The pipeline uses it to identify
// a data file's content.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact for the data with
	// the given digest.
	ArtifactKey(dataHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
	Focus   string  `json:"focus,omitempty"`
	Title   string  `json:"title,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:" followed by a digest over the data digest
// and the JSON form of opts.
func (DefaultKeyer) ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	h := sha256.New()
	h.Write([]byte(dataHash))
	h.Write([]byte{0})
	// ArtifactKeyOpts holds only strings and floats; encoding cannot fail.
	_ = json.NewEncoder(h).Encode(opts)
	return "artifact:" + hex.EncodeToString(h.Sum(nil))
}

type scopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prepends prefix to every key inner produces, so a release
// never reads artifacts rendered by another:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), buildinfo.Scope())
//
// A nil inner means DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return scopedKeyer{inner, prefix}
}

func (k scopedKeyer) ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dataHash, opts)
}

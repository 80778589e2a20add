package preview

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"

	"github.com/redwanJemal/renderforge/internal/core/template"
)

// KeyParams is everything that affects a preview's pixels. Two requests
// with equal params must map to the same cache key.
type KeyParams struct {
	TemplateID string          `json:"templateId"`
	Format     template.Format `json:"format"`
	ThemeID    string          `json:"themeId"`
	Props      map[string]any  `json:"props"`
	Frame      int             `json:"frame"`
}

// DeriveKey hashes the params into a fixed-length hex digest. The JSON
// encoder serializes map keys in sorted order, so the digest is stable under
// key-order permutation of the property bag. Props must already be schema
// validated; validated bags contain only JSON-representable values.
func DeriveKey(p KeyParams) string {
	b, _ := json.Marshal(p)
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

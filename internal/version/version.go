// In file: internal/version/version.go

// Package version centralizes the versioning for the logical components of
// the gateway.
//
// By including these version strings in cache keys, stale cached replies
// are invalidated automatically whenever underlying logic changes: bump
// Tools after changing any tool, PromptLogic after changing the system
// prompts, and all keys minted under the old versions stop matching.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComponentVersions holds the version strings for the parts of the
// application whose behavior shapes a cached reply. Increment manually
// before deploying a change to that component.
var ComponentVersions = struct {
	// Tools covers every executor hosted by the tool server.
	Tools string
	// PromptLogic covers the classification and rephrasing prompts.
	PromptLogic string
	// Scraper covers the enrichment extraction logic.
	Scraper string
}{
	Tools:       "v1.0",
	PromptLogic: "v1.0",
	Scraper:     "v1.0",
}

// GenerateVersionedCacheKey creates a consistent, version-aware key for
// caching chat replies: a prefix, a hash of the prompt, and the component
// versions.
//
// Example output: "chatcache:a1b2c3d4...:tv1.0_pv1.0_sv1.0"
func GenerateVersionedCacheKey(prefix, prompt string) string {
	hasher := sha256.New()
	hasher.Write([]byte(prompt))
	promptHash := hex.EncodeToString(hasher.Sum(nil))

	versionString := fmt.Sprintf("tv%s_pv%s_sv%s",
		ComponentVersions.Tools,
		ComponentVersions.PromptLogic,
		ComponentVersions.Scraper,
	)

	return fmt.Sprintf("%s:%s:%s", prefix, promptHash, versionString)
}

package sandbox

import (
	"fmt"
	"time"
)

// ServiceVersion is the edgesentry release version embedded in every
// Version Tag. It is a plain constant, not derived from build info,
// because the tag only needs to distinguish artifact generations within
// one running binary.
const ServiceVersion = "1.0.0"

// StampVersion produces the opaque Version Tag identifying a freshly
// compiled artifact: "<service-version>-<artifact-length>b-<unix-seconds>".
// It is a pure function of its inputs plus ServiceVersion; a caller whose
// clock read failed should pass the zero time, which stamps "0".
func StampVersion(artifactLen int, loadedAt time.Time) string {
	var sec int64
	if !loadedAt.IsZero() {
		sec = loadedAt.Unix()
	}
	return fmt.Sprintf("%s-%db-%d", ServiceVersion, artifactLen, sec)
}

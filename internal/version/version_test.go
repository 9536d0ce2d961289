package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	oldVersion, oldRef, oldDate := BuildVersion, BuildRef, BuildDate
	t.Cleanup(func() {
		BuildVersion, BuildRef, BuildDate = oldVersion, oldRef, oldDate
	})

	BuildVersion = "1.2.3"
	BuildRef = "abc123"
	BuildDate = "2025-01-02"

	info := Get()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc123", info.Ref)
	assert.Equal(t, "2025-01-02", info.Date)

	s := info.String()
	assert.True(t, strings.Contains(s, "version 1.2.3 (ref abc123, built 2025-01-02)"), s)
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rantnar/nala/pkg/apt"
)

func TestCompileSearchPattern(t *testing.T) {
	re, err := compileSearchPattern("lib.*ssl")
	require.NoError(t, err)
	assert.True(t, re.MatchString("libssl3"))
	assert.True(t, re.MatchString("LIBOPENSSL"))
}

func TestCompileSearchPatternStar(t *testing.T) {
	re, err := compileSearchPattern("*")
	require.NoError(t, err)
	assert.True(t, re.MatchString("anything-at-all"))
}

func TestCompileSearchPatternInvalid(t *testing.T) {
	_, err := compileSearchPattern("[unclosed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile regex")
}

func TestMatchPackage(t *testing.T) {
	re, err := compileSearchPattern("transfer")
	require.NoError(t, err)

	pkg := apt.Package{Name: "curl", Description: "tool for transferring data"}
	assert.True(t, matchPackage(re, pkg, false))
	assert.False(t, matchPackage(re, pkg, true))

	named := apt.Package{Name: "file-transfer", Description: "something else"}
	assert.True(t, matchPackage(re, named, true))
}

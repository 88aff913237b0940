package apt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyNotFound(t *testing.T) {
	out := `Reading package lists...
E: Unable to locate package doesnotexist
E: Unable to locate package alsomissing
`
	err := classifyEngineError(out, errors.New("exit status 100"))

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"doesnotexist", "alsomissing"}, nf.Names)
	assert.Contains(t, err.Error(), "doesnotexist")
	assert.Contains(t, err.Error(), "alsomissing")
}

func TestClassifyNoCandidate(t *testing.T) {
	out := `Package 'mail-transport-agent' is not installed, so not removed
E: Package 'mail-transport-agent' has no installation candidate
`
	err := classifyEngineError(out, errors.New("exit status 100"))

	var nc *NoCandidateError
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, "mail-transport-agent", nc.Name)
}

func TestClassifyBroken(t *testing.T) {
	out := `Some packages could not be installed.
The following packages have unmet dependencies:
 libfoo : Depends: libbar (>= 2.0) but it is not going to be installed
          Depends: libbaz but it is not installable
 other : Breaks: libfoo (<< 1.0)
E: Unable to correct problems, you have held broken packages.
`
	err := classifyEngineError(out, errors.New("exit status 100"))

	var be *BrokenError
	require.ErrorAs(t, err, &be)
	assert.True(t, be.Held)
	require.Len(t, be.Packages, 2)
	assert.Equal(t, "libfoo", be.Packages[0].Name)
	assert.Equal(t, []string{
		"Depends: libbar (>= 2.0) but it is not going to be installed",
		"Depends: libbaz but it is not installable",
	}, be.Packages[0].Unmet)
	assert.Equal(t, "other", be.Packages[1].Name)
	assert.Equal(t, []string{"Breaks: libfoo (<< 1.0)"}, be.Packages[1].Unmet)
}

func TestClassifyBrokenContinuationLines(t *testing.T) {
	// apt omits the package name on every constraint after the first; all
	// of them belong to the package that opened the stanza.
	out := `The following packages have unmet dependencies:
 libfoo : Depends: libbar (>= 2.0) but it is not going to be installed
          Depends: libbaz but it is not installable
          Recommends: libqux but it is not going to be installed
 libzap : Conflicts: libfoo
E: Unable to correct problems.
`
	err := classifyEngineError(out, errors.New("exit status 100"))

	var be *BrokenError
	require.ErrorAs(t, err, &be)
	require.Len(t, be.Packages, 2)
	assert.Equal(t, []string{
		"Depends: libbar (>= 2.0) but it is not going to be installed",
		"Depends: libbaz but it is not installable",
		"Recommends: libqux but it is not going to be installed",
	}, be.Packages[0].Unmet)
	assert.Equal(t, []string{"Conflicts: libfoo"}, be.Packages[1].Unmet)
}

func TestClassifyGenericEngineError(t *testing.T) {
	out := "E: Could not get lock /var/lib/dpkg/lock-frontend\n"
	err := classifyEngineError(out, errors.New("exit status 100"))
	assert.ErrorContains(t, err, "Could not get lock")
}

func TestClassifyUnrecognized(t *testing.T) {
	err := classifyEngineError("", errors.New("exit status 1"))
	assert.ErrorContains(t, err, "engine call failed")
}

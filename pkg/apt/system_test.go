package apt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rantnar/nala/internal/executor"
)

func newTestSystem() *System {
	return NewSystem(executor.New(true, false))
}

func TestTransactionArgsInstall(t *testing.T) {
	s := newTestSystem()
	args := s.transactionArgs(Transaction{
		Install:      []string{"curl", "wget"},
		NoRecommends: true,
	})
	assert.Equal(t, []string{"--no-install-recommends", "install", "--", "curl", "wget"}, args)
}

func TestTransactionArgsLocalDebs(t *testing.T) {
	s := newTestSystem()
	args := s.transactionArgs(Transaction{
		LocalDebs: []string{"./hello_2.10-3_amd64.deb"},
	})
	assert.Equal(t, []string{"install", "--", "./hello_2.10-3_amd64.deb"}, args)
}

func TestTransactionArgsRemove(t *testing.T) {
	s := newTestSystem()
	args := s.transactionArgs(Transaction{
		Remove:     []string{"cruft"},
		Purge:      true,
		AutoRemove: true,
	})
	assert.Equal(t, []string{"--autoremove", "purge", "--", "cruft"}, args)
}

func TestTransactionArgsUpgrade(t *testing.T) {
	s := newTestSystem()

	assert.Equal(t, []string{"dist-upgrade"},
		s.transactionArgs(Transaction{Upgrade: true, Full: true}))
	assert.Equal(t, []string{"upgrade"},
		s.transactionArgs(Transaction{Upgrade: true}))
}

func TestTransactionArgsAutoRemove(t *testing.T) {
	s := newTestSystem()

	assert.Equal(t, []string{"autoremove"},
		s.transactionArgs(Transaction{AutoRemove: true}))
	assert.Equal(t, []string{"--purge", "autoremove"},
		s.transactionArgs(Transaction{AutoRemove: true, Purge: true}))
}

func TestTransactionArgsFixBroken(t *testing.T) {
	s := newTestSystem()
	assert.Equal(t, []string{"-f", "install"},
		s.transactionArgs(Transaction{FixBroken: true}))
}

func TestTransactionArgsOptions(t *testing.T) {
	s := newTestSystem()
	s.SetOptions([]string{"APT::Get::Show-Versions=true"})

	args := s.transactionArgs(Transaction{
		Install: []string{"curl"},
		Options: []string{"Dpkg::Options::=--force-confnew"},
	})
	assert.Equal(t, []string{
		"-o", "APT::Get::Show-Versions=true",
		"-o", "Dpkg::Options::=--force-confnew",
		"install", "--", "curl",
	}, args)
}

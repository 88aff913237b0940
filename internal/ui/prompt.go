package ui

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	label := prompt
	if defaultYes {
		label += " [Y/n]"
	} else {
		label += " [y/N]"
	}

	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if defaultYes {
		p.Default = "y"
	}

	result, err := p.Run()
	if err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return defaultYes, nil
	}

	result = strings.ToLower(strings.TrimSpace(result))
	if result == "" {
		return defaultYes, nil
	}
	return result == "y" || result == "yes", nil
}

// SelectProvider asks the user to pick the concrete package for a virtual
// name with several providers.
func SelectProvider(virtual string, providers []string) (string, error) {
	if len(providers) == 0 {
		return "", fmt.Errorf("no providers for %q", virtual)
	}
	if len(providers) == 1 {
		return providers[0], nil
	}

	p := promptui.Select{
		Label: fmt.Sprintf("%q is a virtual package; select a provider", virtual),
		Items: providers,
		Size:  10,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(providers[index]), strings.ToLower(input))
		},
	}

	_, result, err := p.Run()
	if err != nil {
		return "", err
	}
	return result, nil
}

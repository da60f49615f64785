package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompt answers prompts in order and records the titles it saw.
func scriptedPrompt(answers ...string) (PromptFunc, *[]string) {
	var titles []string
	return func(title string) (string, error) {
		titles = append(titles, title)
		if len(answers) == 0 {
			return "", nil
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}, &titles
}

func TestAlwaysYes(t *testing.T) {
	ok, err := AlwaysYes()("Anything?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewPromptKitFillsEveryFunc(t *testing.T) {
	pk := NewPromptKit()
	assert.NotNil(t, pk.Prompt)
	assert.NotNil(t, pk.Confirm)
	assert.NotNil(t, pk.Select)
	assert.NotNil(t, pk.MultiSelect)
}

func TestPromptOr(t *testing.T) {
	t.Run("answer wins", func(t *testing.T) {
		prompt, titles := scriptedPrompt("42")
		v, err := PromptKit{Prompt: prompt}.promptOr("Doanh thu", "10")
		require.NoError(t, err)
		assert.Equal(t, "42", v)
		assert.Equal(t, []string{"Doanh thu (10)"}, *titles)
	})

	t.Run("empty answer keeps default", func(t *testing.T) {
		prompt, _ := scriptedPrompt("   ")
		v, err := PromptKit{Prompt: prompt}.promptOr("Doanh thu", "10")
		require.NoError(t, err)
		assert.Equal(t, "10", v)
	})

	t.Run("no prompt func", func(t *testing.T) {
		v, err := PromptKit{}.promptOr("Doanh thu", "10")
		require.NoError(t, err)
		assert.Equal(t, "10", v)
	})

	t.Run("error", func(t *testing.T) {
		boom := errors.New("boom")
		pk := PromptKit{Prompt: func(string) (string, error) { return "", boom }}
		_, err := pk.promptOr("Doanh thu", "")
		assert.ErrorIs(t, err, boom)
	})
}

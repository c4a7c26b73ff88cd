package extensions

import (
	"errors"
	"testing"

	"github.com/serin-reader/serin/internal/domain/appmodule"
	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"github.com/serin-reader/serin/internal/platform/proc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSpeaker struct {
	messages []string
}

func (s *recordingSpeaker) Speak(message string) {
	s.messages = append(s.messages, message)
}

func newTestCatalog() (*Catalog, *recordingSpeaker) {
	speaker := &recordingSpeaker{}
	return NewCatalog(speaker, logging.NewNop()), speaker
}

func TestFetchUnknownAppReturnsGeneric(t *testing.T) {
	c, speaker := newTestCatalog()

	factory, err := c.Fetch("unknownApp")
	require.NoError(t, err)
	require.NotNil(t, factory)

	mod := factory("unknownApp", 100, proc.NopHandle(true), logging.NewNop())
	assert.Equal(t, "unknownApp", mod.AppName())
	assert.Empty(t, speaker.messages)
}

func TestFetchRegisteredExtension(t *testing.T) {
	c, _ := newTestCatalog()
	c.Add("notepad", func() (Factory, error) {
		return func(appName string, pid int, handle proc.Handle, logger *logging.Logger) *appmodule.Module {
			return appmodule.New(appName, pid, handle, logger)
		}, nil
	})

	assert.True(t, c.Has("notepad"))
	factory, err := c.Fetch("notepad")
	require.NoError(t, err)

	mod := factory("notepad", 100, proc.NopHandle(true), logging.NewNop())
	assert.Equal(t, 100, mod.ProcessID())
}

func TestFetchBrokenExtension(t *testing.T) {
	c, speaker := newTestCatalog()
	c.Add("brokenApp", func() (Factory, error) {
		return nil, errors.New("syntax error")
	})

	factory, err := c.Fetch("brokenApp")
	assert.Nil(t, factory)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "brokenApp", loadErr.App)

	// the user hears about broken extensions
	require.Len(t, speaker.messages, 1)
	assert.Contains(t, speaker.messages[0], "brokenApp")
}

func TestFetchRegistrationDefiningNothing(t *testing.T) {
	c, speaker := newTestCatalog()
	c.Add("emptyApp", func() (Factory, error) {
		return nil, nil
	})

	// registered but defines nothing usable: generic default, not an error
	factory, err := c.Fetch("emptyApp")
	require.NoError(t, err)
	require.NotNil(t, factory)
	assert.Empty(t, speaker.messages)
}

func TestAddDuplicatePanics(t *testing.T) {
	c, _ := newTestCatalog()
	loader := func() (Factory, error) { return nil, nil }

	c.Add("dup", loader)
	assert.Panics(t, func() { c.Add("dup", loader) })
}

func TestGlobalRegistration(t *testing.T) {
	// a unique name keeps this independent of other tests and packages
	Register("catalog-test-app", func() (Factory, error) { return nil, nil })

	c, _ := newTestCatalog()
	c.AddRegistered()
	assert.True(t, c.Has("catalog-test-app"))
}

package tui

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/prepkit/internal/challenge"
	"github.com/idilsaglam/prepkit/internal/model"
	"github.com/idilsaglam/prepkit/internal/state"
)

var france = model.Country{
	Name:       model.CountryName{Common: "France"},
	Capital:    []string{"Paris"},
	Population: 67391582,
	Flags:      model.Flags{SVG: "https://flagcdn.com/fr.svg"},
}

func manyCountries(n int) []model.Country {
	out := []model.Country{france}
	for i := 0; i < n; i++ {
		out = append(out, model.Country{Name: model.CountryName{Common: fmt.Sprintf("Land %02d", i)}})
	}
	return out
}

func countryOf(f *Frame) *countryWidget { return f.Widget().(*countryWidget) }

func search(t *testing.T, f *Frame, name string) {
	t.Helper()
	send(f, keyOf(tea.KeyCtrlL), runes(name))
	cmd := send(f, keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	send(f, cmd())
}

func TestFormatPopulation(t *testing.T) {
	assert.Equal(t, "67,391,582", FormatPopulation(67391582))
	assert.Equal(t, "0", FormatPopulation(0))
}

func TestCountryLowSearch(t *testing.T) {
	fake := &fakeAPI{countries: manyCountries(3)}
	f := newFrame(t, challenge.Country, challenge.Low, Deps{API: fake})
	assert.Zero(t, fake.Calls("all"))

	search(t, f, "France")
	w := countryOf(f)
	require.NotNil(t, w.Card())
	v := f.View()
	assert.Contains(t, v, "Paris")
	assert.Contains(t, v, "67,391,582")

	search(t, f, "Atlantis")
	assert.Nil(t, w.Card())
	assert.Contains(t, f.View(), `No country named "Atlantis"`)

	send(f, keyOf(tea.KeyCtrlL))
	assert.NotContains(t, f.View(), "Error")
	assert.Nil(t, w.Saved())
}

func TestCountryEmptySearchIsIgnored(t *testing.T) {
	f := newFrame(t, challenge.Country, challenge.Low, Deps{API: &fakeAPI{}})
	assert.Nil(t, send(f, runes("   "), keyOf(tea.KeyEnter)))
}

func TestCountryMidSavesLocallyWithoutDuplicates(t *testing.T) {
	store := state.NewStore(nil)
	fake := &fakeAPI{countries: manyCountries(3)}
	f := newFrame(t, challenge.Country, challenge.Mid, Deps{API: fake, Store: store})
	w := countryOf(f)
	send(f, w.fetchAll()())
	assert.Len(t, w.Listed(), 4)

	send(f, runes("fra"))
	require.Len(t, w.Listed(), 1)

	search(t, f, "France")
	send(f, keyOf(tea.KeyCtrlS))
	send(f, keyOf(tea.KeyCtrlS))
	assert.Len(t, w.Saved(), 1)
	assert.Contains(t, f.View(), "France is already saved")
	assert.Empty(t, store.SavedCountries(), "mid keeps its own list")
}

func TestCountryHardStoreAndPaging(t *testing.T) {
	store := state.NewStore(nil)
	fake := &fakeAPI{countries: manyCountries(24)}
	f := newFrame(t, challenge.Country, challenge.Hard, Deps{API: fake, Store: store})
	w := countryOf(f)
	send(f, w.fetchAll()())

	listed := w.Listed()
	require.Len(t, listed, 10)
	assert.Equal(t, "France", listed[0].Name.Common)
	assert.Contains(t, f.View(), "Total: 25 / listed: 10")

	send(f, keyOf(tea.KeyPgDown))
	assert.Equal(t, "Land 09", w.Listed()[0].Name.Common)
	send(f, keyOf(tea.KeyPgDown))
	assert.Len(t, w.Listed(), 5)
	send(f, keyOf(tea.KeyPgDown))
	assert.Len(t, w.Listed(), 5, "no page past the end")
	send(f, keyOf(tea.KeyPgUp))
	assert.Len(t, w.Listed(), 10)

	search(t, f, "France")
	send(f, keyOf(tea.KeyCtrlS))
	require.Len(t, store.SavedCountries(), 1)
	assert.True(t, store.Dirty())

	send(f, keyOf(tea.KeyCtrlD))
	assert.Empty(t, store.SavedCountries())
}

func TestCountryMidAllFetchRetry(t *testing.T) {
	for _, level := range []challenge.Level{challenge.Mid, challenge.Hard} {
		t.Run(string(level), func(t *testing.T) {
			fake := &fakeAPI{allErr: errors.New("boom"), countries: manyCountries(2)}
			f := newFrame(t, challenge.Country, level, Deps{API: fake})
			w := countryOf(f)
			send(f, w.fetchAll()())
			v := f.View()
			assert.Contains(t, v, "Error: boom")
			assert.Contains(t, v, "ctrl+r to retry")

			fake.allErr = nil
			cmd := send(f, keyOf(tea.KeyCtrlR))
			require.NotNil(t, cmd)
			assert.Contains(t, f.View(), "Loading countries")
			assert.Nil(t, send(f, keyOf(tea.KeyCtrlR)), "no second fetch while loading")

			send(f, cmd())
			assert.Equal(t, 2, fake.Calls("all"))
			assert.NotContains(t, f.View(), "Error: boom")
			assert.NotEmpty(t, w.Listed())
		})
	}
}

func TestCountryRetryNeedsAFailure(t *testing.T) {
	fake := &fakeAPI{countries: manyCountries(2)}
	f := newFrame(t, challenge.Country, challenge.Mid, Deps{API: fake})
	w := countryOf(f)
	send(f, w.fetchAll()())
	assert.Nil(t, send(f, keyOf(tea.KeyCtrlR)))
	assert.Equal(t, 1, fake.Calls("all"))
}

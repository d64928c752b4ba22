package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/grimoire-api/internal/errors"
)

type ClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	mux      *http.ServeMux
	lastAuth string
	lastBody []byte
}

func (s *ClientTestSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lastAuth = r.Header.Get("Authorization")
		s.lastBody, _ = io.ReadAll(r.Body)
		s.mux.ServeHTTP(w, r)
	}))

	serverURL = s.server.URL + "/"
	authToken = "tok"
	timeout = 5 * time.Second
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
	authToken = ""
}

func (s *ClientTestSuite) respond(pattern string, status int, body string) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (s *ClientTestSuite) run(cmd *cobra.Command, runE func(*cobra.Command, []string) error, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	err := runE(cmd, args)
	return out.String(), err
}

func (s *ClientTestSuite) TestDo_DecodesErrorEnvelope() {
	s.respond("GET /characters/c1", http.StatusBadRequest,
		`{"error":{"code":"INVALID_ARGUMENT","message":"unknown spells: Wish","request_id":"req-1","details":{"unknown_spells":["Wish"]}}}`)

	err := newAPIClient().do(context.Background(), http.MethodGet, "/characters/c1", nil, nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal("unknown spells: Wish", errors.GetMessage(err))

	meta := errors.GetMeta(err)
	s.Equal("req-1", meta["request_id"])
	s.Equal([]any{"Wish"}, meta["unknown_spells"])
	s.Equal("Bearer tok", s.lastAuth)
}

func (s *ClientTestSuite) TestDo_UnexpectedErrorBody() {
	s.respond("GET /boom", http.StatusBadGateway, `<html>bad gateway</html>`)

	err := newAPIClient().do(context.Background(), http.MethodGet, "/boom", nil, nil)
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
	s.Contains(err.Error(), "502")
}

func (s *ClientTestSuite) TestCreateCharacter() {
	s.respond("POST /characters", http.StatusCreated, `{
		"id":"c1","user_id":"u1","name":"Aria","class_name":"Cleric","level":3,
		"hp_current":24,"hp_max":24,"spell_slots":{"2":[2,2],"1":[4,4]},"spells_known":[]
	}`)
	characterName, characterClass, characterLevel = "Aria", "Cleric", 3

	out, err := s.run(createCharacterCmd, runCreateCharacter)
	s.Require().NoError(err)

	var sent map[string]any
	s.Require().NoError(json.Unmarshal(s.lastBody, &sent))
	s.Equal("Aria", sent["name"])
	s.Equal("Cleric", sent["class_name"])
	s.InDelta(3, sent["level"], 0)

	s.Contains(out, "HP:    24/24")
	s.Contains(out, "Slots L1: 4/4\nSlots L2: 2/2")
}

func (s *ClientTestSuite) TestCharacterCommandsNeedToken() {
	authToken = ""
	_, err := s.run(listCharactersCmd, runListCharacters)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ClientTestSuite) TestLearnSpells_Notice() {
	s.respond("POST /characters/c1/spells", http.StatusOK, `{
		"character":{"id":"c1","spells_known":[{"name":"Light","level":0}]},
		"added":0,"notice":"All selected spells are already known"
	}`)
	learnCharacterID = "c1"
	learnSpells = []string{"Light"}

	out, err := s.run(learnSpellsCmd, runLearnSpells)
	s.Require().NoError(err)
	s.JSONEq(`{"spells":["Light"]}`, string(s.lastBody))
	s.Contains(out, "All selected spells are already known")
	s.Contains(out, "[Light]")
}

func (s *ClientTestSuite) TestListSpells_Query() {
	var rawQuery string
	s.mux.HandleFunc("GET /spells", func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"spells":[{"id":"light","name":"Light","level":0,"school":"Evocation"}],"count":1}`)
	})
	spellSearch, spellClass = "li", "Cleric"
	defer func() { spellSearch, spellClass = "", "" }()

	out, err := s.run(listSpellsCmd, runListSpells)
	s.Require().NoError(err)
	s.Equal("class=Cleric&search=li", rawQuery)
	s.Contains(out, "Found 1 spells")
	s.Contains(out, "cantrip")
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

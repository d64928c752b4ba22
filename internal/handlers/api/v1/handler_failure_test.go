package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/grimoire-api/internal/errors"
	v1 "github.com/KirkDiggler/grimoire-api/internal/handlers/api/v1"
	"github.com/KirkDiggler/grimoire-api/internal/orchestrators/character"
	charactermock "github.com/KirkDiggler/grimoire-api/internal/orchestrators/character/mock"
	librarymock "github.com/KirkDiggler/grimoire-api/internal/orchestrators/library/mock"
)

type staticVerifier struct {
	userID string
}

func (v staticVerifier) VerifySubject(token string) (string, error) {
	if token != "good" {
		return "", errors.Unauthenticated("bad token")
	}
	return v.userID, nil
}

type HandlerFailureTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockCharacter *charactermock.MockService
	mockLibrary   *librarymock.MockService
	routes        http.Handler
}

func (s *HandlerFailureTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCharacter = charactermock.NewMockService(s.ctrl)
	s.mockLibrary = librarymock.NewMockService(s.ctrl)

	handler, err := v1.NewHandler(&v1.HandlerConfig{
		CharacterService: s.mockCharacter,
		LibraryService:   s.mockLibrary,
		Verifier:         staticVerifier{userID: "user-1"},
	})
	s.Require().NoError(err)
	s.routes = handler.Routes()
}

func (s *HandlerFailureTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerFailureTestSuite) serve(method, path string) (*httptest.ResponseRecorder, errorBody) {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	s.routes.ServeHTTP(rec, req)

	var body errorBody
	if rec.Code >= http.StatusBadRequest {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func (s *HandlerFailureTestSuite) TestNewHandler_RequiresServices() {
	_, err := v1.NewHandler(&v1.HandlerConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerFailureTestSuite) TestStorageFailureIsGeneric() {
	s.mockCharacter.EXPECT().
		ListCharacters(gomock.Any(), &character.ListCharactersInput{UserID: "user-1"}).
		Return(nil, errors.Wrap(errors.Internal("dial tcp 10.0.0.5:6379: connection refused"), "failed to list characters"))

	rec, body := s.serve(http.MethodGet, "/characters")
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("INTERNAL", body.Error.Code)
	s.NotContains(body.Error.Message, "10.0.0.5")
	s.Equal("something went wrong, please try again", body.Error.Message)
}

func (s *HandlerFailureTestSuite) TestConcurrentModificationIsConflict() {
	s.mockCharacter.EXPECT().
		GetGrimoire(gomock.Any(), &character.GetGrimoireInput{UserID: "user-1", CharacterID: "char-1"}).
		Return(nil, errors.Aborted("character was modified concurrently, retry"))

	rec, body := s.serve(http.MethodGet, "/characters/char-1/grimoire")
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("ABORTED", body.Error.Code)
}

func (s *HandlerFailureTestSuite) TestPanicIsRecovered() {
	s.mockCharacter.EXPECT().
		GetCharacter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *character.GetCharacterInput) (*character.GetCharacterOutput, error) {
			panic("nil map write")
		})

	rec, body := s.serve(http.MethodGet, "/characters/char-1")
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("INTERNAL", body.Error.Code)
	s.NotContains(body.Error.Message, "nil map")
	s.NotEmpty(rec.Header().Get(v1.HeaderRequestID))
}

func (s *HandlerFailureTestSuite) TestUnknownRoute() {
	rec, body := s.serve(http.MethodGet, "/nope")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("NOT_FOUND", body.Error.Code)
}

func (s *HandlerFailureTestSuite) TestBadSpellcastersQuery() {
	rec, body := s.serve(http.MethodGet, "/characters?spellcasters=maybe")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(body.Error.Message, "spellcasters")
}

func TestHandlerFailureTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerFailureTestSuite))
}

package character_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/entities"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
	"github.com/KirkDiggler/grimoire-api/internal/orchestrators/character"
	mockclock "github.com/KirkDiggler/grimoire-api/internal/pkg/clock/mock"
	idgenmock "github.com/KirkDiggler/grimoire-api/internal/pkg/idgen/mock"
	characterrepo "github.com/KirkDiggler/grimoire-api/internal/repositories/character"
	characterrepomock "github.com/KirkDiggler/grimoire-api/internal/repositories/character/mock"
	sharerepo "github.com/KirkDiggler/grimoire-api/internal/repositories/share"
	sharerepomock "github.com/KirkDiggler/grimoire-api/internal/repositories/share/mock"
	"github.com/KirkDiggler/grimoire-api/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockCharRepo       *characterrepomock.MockRepository
	mockShareRepo      *sharerepomock.MockRepository
	mockIDGenerator    *idgenmock.MockGenerator
	mockTokenGenerator *idgenmock.MockGenerator
	mockClock          *mockclock.MockClock
	orchestrator       *character.Orchestrator
	ctx                context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCharRepo = characterrepomock.NewMockRepository(s.ctrl)
	s.mockShareRepo = sharerepomock.NewMockRepository(s.ctrl)
	s.mockIDGenerator = idgenmock.NewMockGenerator(s.ctrl)
	s.mockTokenGenerator = idgenmock.NewMockGenerator(s.ctrl)
	s.mockClock = mockclock.NewMockClock(s.ctrl)
	s.ctx = context.Background()

	catalog := testutils.NewFixtureCatalog(s.T())
	rules, err := engine.New(&engine.Config{Catalog: catalog})
	s.Require().NoError(err)

	orchestrator, err := character.New(&character.Config{
		CharacterRepo:  s.mockCharRepo,
		ShareRepo:      s.mockShareRepo,
		Engine:         rules,
		Catalog:        catalog,
		IDGenerator:    s.mockIDGenerator,
		TokenGenerator: s.mockTokenGenerator,
		Clock:          s.mockClock,
	})
	s.Require().NoError(err)
	s.orchestrator = orchestrator
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// expectUpdate runs the orchestrator's mutation against stored the way the
// repositories do, returning the written record.
func (s *OrchestratorTestSuite) expectUpdate(stored *entities.Character) *gomock.Call {
	return s.mockCharRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input characterrepo.UpdateInput) (*characterrepo.UpdateOutput, error) {
			s.Equal(stored.ID, input.ID)
			s.Equal(stored.UserID, input.UserID)

			next := stored.Clone()
			if err := input.Mutate(next); err != nil {
				if errors.Is(err, characterrepo.ErrSkipWrite) {
					return &characterrepo.UpdateOutput{Character: stored.Clone()}, nil
				}
				return nil, err
			}
			return &characterrepo.UpdateOutput{Character: next, Written: true}, nil
		})
}

func (s *OrchestratorTestSuite) expectGet(stored *entities.Character) {
	s.mockCharRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{ID: stored.ID, UserID: stored.UserID}).
		Return(&characterrepo.GetOutput{Character: stored.Clone()}, nil)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func (s *OrchestratorTestSuite) TestNew_MissingDependencies() {
	_, err := character.New(&character.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "CharacterRepo")
}

func (s *OrchestratorTestSuite) TestCreateCharacter_DerivesProgression() {
	s.mockIDGenerator.EXPECT().Generate().Return("char-new")
	s.mockCharRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input characterrepo.CreateInput) (*characterrepo.CreateOutput, error) {
			return &characterrepo.CreateOutput{Character: input.Character}, nil
		})

	output, err := s.orchestrator.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		UserID: testutils.TestUserID,
		Draft: character.CharacterDraft{
			Name:       "  Hilde  ",
			ClassName:  "Cleric",
			Level:      intPtr(3),
			HPMax:      intPtr(99),
			SpellSlots: entities.SpellSlots{"1": {Current: 9, Max: 9}},
		},
	})
	s.Require().NoError(err)

	c := output.Character
	s.Equal("char-new", c.ID)
	s.Equal(testutils.TestUserID, c.UserID)
	s.Equal("Hilde", c.Name)
	s.Equal(24, c.HPMax)
	s.Equal(24, c.HPCurrent)
	s.Equal(entities.SpellSlots{
		"1": {Current: 4, Max: 4},
		"2": {Current: 2, Max: 2},
	}, c.SpellSlots)
	s.Empty(c.SpellsKnown)
	s.NotNil(c.SpellsKnown)
}

func (s *OrchestratorTestSuite) TestCreateCharacter_UnknownClassKeepsClientValues() {
	s.mockIDGenerator.EXPECT().Generate().Return("char-new")
	s.mockCharRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input characterrepo.CreateInput) (*characterrepo.CreateOutput, error) {
			return &characterrepo.CreateOutput{Character: input.Character}, nil
		})

	output, err := s.orchestrator.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		UserID: testutils.TestUserID,
		Draft: character.CharacterDraft{
			Name:          "Vex",
			ClassName:     "Artificer",
			SpellSlots:    entities.SpellSlots{"1": {Current: 1, Max: 2}},
			SpellsKnown:   []entities.KnownSpell{{Name: "Shield", Level: entities.UnknownSpellLevel}},
			CharacterData: json.RawMessage(`{"race":"gnome"}`),
		},
	})
	s.Require().NoError(err)

	c := output.Character
	s.Equal(1, c.Level)
	s.Equal(1, c.HPMax)
	s.Equal(1, c.HPCurrent)
	s.Equal(entities.SpellSlots{"1": {Current: 1, Max: 2}}, c.SpellSlots)
	s.Equal([]entities.KnownSpell{{Name: "Shield", Level: 1}}, c.SpellsKnown)
	s.JSONEq(`{"race":"gnome"}`, string(c.CharacterData))
}

func (s *OrchestratorTestSuite) TestCreateCharacter_Validation() {
	testCases := []struct {
		name    string
		draft   character.CharacterDraft
		wantMsg string
	}{
		{
			name:    "missing name",
			draft:   character.CharacterDraft{Name: "   "},
			wantMsg: "name",
		},
		{
			name:    "level too high",
			draft:   character.CharacterDraft{Name: "Vex", Level: intPtr(21)},
			wantMsg: "level must be between 1 and 20",
		},
		{
			name:    "current above max",
			draft:   character.CharacterDraft{Name: "Vex", HPMax: intPtr(5), HPCurrent: intPtr(6)},
			wantMsg: "hp_current",
		},
		{
			name: "bad slot key",
			draft: character.CharacterDraft{
				Name:       "Vex",
				SpellSlots: entities.SpellSlots{"10": {Current: 1, Max: 1}},
			},
			wantMsg: "unknown slot level",
		},
		{
			name: "duplicate spells",
			draft: character.CharacterDraft{
				Name:        "Vex",
				SpellsKnown: []entities.KnownSpell{{Name: "Light"}, {Name: "Light"}},
			},
			wantMsg: "duplicate spell",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockIDGenerator.EXPECT().Generate().Return("char-new")

			output, err := s.orchestrator.CreateCharacter(s.ctx, &character.CreateCharacterInput{
				UserID: testutils.TestUserID,
				Draft:  tc.draft,
			})
			s.Require().Error(err)
			s.Nil(output)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.wantMsg)
		})
	}
}

func (s *OrchestratorTestSuite) TestCreateCharacter_Unauthenticated() {
	output, err := s.orchestrator.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		Draft: character.CharacterDraft{Name: "Vex"},
	})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsUnauthenticated(err))
}

func (s *OrchestratorTestSuite) TestListCharacters_SpellcastersOnly() {
	fighter := testutils.NewTestCharacter(testutils.TestUserID)
	fighter.ID = "char-fighter"
	fighter.ClassName = "Fighter"
	cleric := testutils.NewTestCharacter(testutils.TestUserID)

	s.mockCharRepo.EXPECT().
		ListByUserID(s.ctx, characterrepo.ListByUserIDInput{UserID: testutils.TestUserID}).
		Return(&characterrepo.ListByUserIDOutput{
			Characters: []*entities.Character{fighter, cleric},
		}, nil)

	output, err := s.orchestrator.ListCharacters(s.ctx, &character.ListCharactersInput{
		UserID:           testutils.TestUserID,
		SpellcastersOnly: true,
	})
	s.Require().NoError(err)
	s.Require().Len(output.Characters, 1)
	s.Equal(testutils.TestCharacterID, output.Characters[0].ID)
}

func (s *OrchestratorTestSuite) TestGetCharacter_NotFound() {
	s.mockCharRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{ID: "char-missing", UserID: testutils.TestUserID}).
		Return(nil, errors.NotFound("character char-missing not found"))

	output, err := s.orchestrator.GetCharacter(s.ctx, &character.GetCharacterInput{
		UserID:      testutils.TestUserID,
		CharacterID: "char-missing",
	})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsNotFound(err))
	s.Contains(err.Error(), "failed to get character")
}

func (s *OrchestratorTestSuite) TestUpdateCharacter_LevelRecomputes() {
	stored := testutils.NewTestCharacter(testutils.TestUserID)
	stored.HPCurrent = 3
	s.expectUpdate(stored)

	output, err := s.orchestrator.UpdateCharacter(s.ctx, &character.UpdateCharacterInput{
		UserID:      testutils.TestUserID,
		CharacterID: stored.ID,
		Patch: character.CharacterPatch{
			Level: intPtr(3),
			HPMax: intPtr(50),
		},
	})
	s.Require().NoError(err)
	s.True(output.Recomputed)
	s.Equal(3, output.Character.Level)
	s.Equal(24, output.Character.HPMax)
	s.Equal(24, output.Character.HPCurrent)
	s.Equal(entities.SpellSlots{
		"1": {Current: 4, Max: 4},
		"2": {Current: 2, Max: 2},
	}, output.Character.SpellSlots)
}

func (s *OrchestratorTestSuite) TestUpdateCharacter_SameLevelKeepsClientValues() {
	stored := testutils.NewTestCharacter(testutils.TestUserID)
	s.expectUpdate(stored)

	output, err := s.orchestrator.UpdateCharacter(s.ctx, &character.UpdateCharacterInput{
		UserID:      testutils.TestUserID,
		CharacterID: stored.ID,
		Patch: character.CharacterPatch{
			Name:      strPtr("Merric the Bold"),
			Level:     intPtr(1),
			HPCurrent: intPtr(4),
		},
	})
	s.Require().NoError(err)
	s.False(output.Recomputed)
	s.Equal("Merric the Bold", output.Character.Name)
	s.Equal(4, output.Character.HPCurrent)
	s.Equal(10, output.Character.HPMax)
}

func (s *OrchestratorTestSuite) TestUpdateCharacter_InvalidPatch() {
	stored := testutils.NewTestCharacter(testutils.TestUserID)
	s.expectUpdate(stored)

	output, err := s.orchestrator.UpdateCharacter(s.ctx, &character.UpdateCharacterInput{
		UserID:      testutils.TestUserID,
		CharacterID: stored.ID,
		Patch:       character.CharacterPatch{HPCurrent: intPtr(11)},
	})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsInvalidArgument(err))
	s.Equal("validation failed: hp_current: must be between 0 and hp_max", errors.UserMessage(err))
}

func (s *OrchestratorTestSuite) TestUpdateCharacter_EmptyPatch() {
	stored := testutils.NewTestCharacter(testutils.TestUserID)
	s.expectUpdate(stored)

	_, err := s.orchestrator.UpdateCharacter(s.ctx, &character.UpdateCharacterInput{
		UserID:      testutils.TestUserID,
		CharacterID: stored.ID,
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "no fields to update")
}

func (s *OrchestratorTestSuite) TestDeleteCharacter() {
	s.mockCharRepo.EXPECT().
		Delete(s.ctx, characterrepo.DeleteInput{ID: testutils.TestCharacterID, UserID: testutils.TestUserID}).
		Return(&characterrepo.DeleteOutput{Deleted: false}, nil)

	output, err := s.orchestrator.DeleteCharacter(s.ctx, &character.DeleteCharacterInput{
		UserID:      testutils.TestUserID,
		CharacterID: testutils.TestCharacterID,
	})
	s.Require().NoError(err)
	s.False(output.Deleted)
}

func (s *OrchestratorTestSuite) TestShareCharacter() {
	stored := testutils.NewTestCharacter(testutils.TestUserID)
	expiresAt := testutils.FixtureTime.Add(character.DefaultShareTTL)

	s.expectGet(stored)
	s.mockTokenGenerator.EXPECT().Generate().Return("tok-1")
	s.mockClock.EXPECT().Now().Return(testutils.FixtureTime)

	shared := stored.Clone()
	token := "tok-1"
	shared.ShareToken = &token
	shared.TokenExpiresAt = &expiresAt
	s.mockShareRepo.EXPECT().
		SetToken(s.ctx, sharerepo.SetTokenInput{
			CharacterID: stored.ID,
			Token:       "tok-1",
			ExpiresAt:   expiresAt,
		}).
		Return(&sharerepo.SetTokenOutput{Character: shared}, nil)

	output, err := s.orchestrator.ShareCharacter(s.ctx, &character.ShareCharacterInput{
		UserID:      testutils.TestUserID,
		CharacterID: stored.ID,
	})
	s.Require().NoError(err)
	s.Equal("tok-1", output.Token)
	s.Equal(expiresAt, output.ExpiresAt)
	s.Equal(720*time.Hour, output.ExpiresAt.Sub(testutils.FixtureTime))
}

func (s *OrchestratorTestSuite) TestShareCharacter_NotOwned() {
	s.mockCharRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{ID: testutils.TestCharacterID, UserID: testutils.OtherUserID}).
		Return(nil, errors.NotFound("character not found"))

	output, err := s.orchestrator.ShareCharacter(s.ctx, &character.ShareCharacterInput{
		UserID:      testutils.OtherUserID,
		CharacterID: testutils.TestCharacterID,
	})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestRevokeShare() {
	stored := testutils.NewTestCharacter(testutils.TestUserID)
	s.expectGet(stored)
	s.mockShareRepo.EXPECT().
		ClearToken(s.ctx, sharerepo.ClearTokenInput{CharacterID: stored.ID}).
		Return(&sharerepo.ClearTokenOutput{Character: stored.Clone()}, nil)

	output, err := s.orchestrator.RevokeShare(s.ctx, &character.RevokeShareInput{
		UserID:      testutils.TestUserID,
		CharacterID: stored.ID,
	})
	s.Require().NoError(err)
	s.Nil(output.Character.ShareToken)
}

func (s *OrchestratorTestSuite) TestGetSharedCharacter_EmptyToken() {
	output, err := s.orchestrator.GetSharedCharacter(s.ctx, &character.GetSharedCharacterInput{Token: " "})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestAdjustSpellSlot() {
	testCases := []struct {
		name        string
		level       string
		axis        engine.SlotAxis
		delta       int
		wantPair    entities.SlotPair
		wantChanged bool
		wantPresent bool
	}{
		{
			name:        "spend a slot",
			level:       "1",
			axis:        engine.SlotAxisCurrent,
			delta:       -1,
			wantPair:    entities.SlotPair{Current: 1, Max: 2},
			wantChanged: true,
			wantPresent: true,
		},
		{
			name:        "restore beyond max clamps",
			level:       "1",
			axis:        engine.SlotAxisCurrent,
			delta:       5,
			wantPair:    entities.SlotPair{Current: 2, Max: 2},
			wantChanged: false,
			wantPresent: true,
		},
		{
			name:        "lower max pulls current down",
			level:       "1",
			axis:        engine.SlotAxisMax,
			delta:       -1,
			wantPair:    entities.SlotPair{Current: 1, Max: 1},
			wantChanged: true,
			wantPresent: true,
		},
		{
			name:  "absent level",
			level: "5",
			axis:  engine.SlotAxisCurrent,
			delta: -1,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			stored := testutils.NewTestCharacter(testutils.TestUserID)
			s.expectUpdate(stored)

			output, err := s.orchestrator.AdjustSpellSlot(s.ctx, &character.AdjustSpellSlotInput{
				UserID:      testutils.TestUserID,
				CharacterID: stored.ID,
				Level:       tc.level,
				Axis:        tc.axis,
				Delta:       tc.delta,
			})
			s.Require().NoError(err)
			s.Equal(tc.wantChanged, output.Changed)
			s.Equal(tc.wantPresent, output.Present)
			s.Equal(tc.wantPair, output.Pair)
			if tc.wantPresent {
				s.Equal(tc.wantPair, output.Character.SpellSlots[tc.level])
			}
		})
	}
}

func (s *OrchestratorTestSuite) TestAdjustSpellSlot_InvalidInput() {
	output, err := s.orchestrator.AdjustSpellSlot(s.ctx, &character.AdjustSpellSlotInput{
		UserID:      testutils.TestUserID,
		CharacterID: testutils.TestCharacterID,
		Level:       "0",
		Axis:        "both",
		Delta:       1,
	})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "level")
	s.Contains(err.Error(), "axis")
}

func (s *OrchestratorTestSuite) TestLearnSpells_AddsNewInOrder() {
	stored := testutils.NewTestCharacter(testutils.TestUserID)
	s.expectUpdate(stored)

	output, err := s.orchestrator.LearnSpells(s.ctx, &character.LearnSpellsInput{
		UserID:      testutils.TestUserID,
		CharacterID: stored.ID,
		SpellNames:  []string{"Spirit Guardians", "Light", "Cure Wounds"},
	})
	s.Require().NoError(err)
	s.Equal(2, output.Added)
	s.False(output.AlreadyKnown)
	s.Empty(output.Notice)
	s.Equal([]entities.KnownSpell{
		{Name: "Light", Level: 0},
		{Name: "Spirit Guardians", Level: 3},
		{Name: "Cure Wounds", Level: 1},
	}, output.Character.SpellsKnown)
}

func (s *OrchestratorTestSuite) TestLearnSpells_AlreadyKnown() {
	stored := testutils.NewTestCharacter(testutils.TestUserID)
	s.expectUpdate(stored)

	output, err := s.orchestrator.LearnSpells(s.ctx, &character.LearnSpellsInput{
		UserID:      testutils.TestUserID,
		CharacterID: stored.ID,
		SpellNames:  []string{"Light"},
	})
	s.Require().NoError(err)
	s.Equal(0, output.Added)
	s.True(output.AlreadyKnown)
	s.Equal(character.NoticeAlreadyKnown, output.Notice)
	s.Equal(stored.SpellsKnown, output.Character.SpellsKnown)
}

func (s *OrchestratorTestSuite) TestLearnSpells_UnknownSpell() {
	output, err := s.orchestrator.LearnSpells(s.ctx, &character.LearnSpellsInput{
		UserID:      testutils.TestUserID,
		CharacterID: testutils.TestCharacterID,
		SpellNames:  []string{"Light", "Wish"},
	})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsInvalidArgument(err))
	s.Equal([]string{"Wish"}, errors.GetMeta(err)["unknown_spells"])
}

func (s *OrchestratorTestSuite) TestLearnSpells_Ineligible() {
	stored := testutils.NewTestCharacter(testutils.TestUserID)
	s.expectUpdate(stored)

	output, err := s.orchestrator.LearnSpells(s.ctx, &character.LearnSpellsInput{
		UserID:      testutils.TestUserID,
		CharacterID: stored.ID,
		SpellNames:  []string{"Magic Missile"},
	})
	s.Require().Error(err)
	s.Nil(output)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(errors.UserMessage(err), "spells not available to Cleric: Magic Missile")
}

func (s *OrchestratorTestSuite) TestLearnSpells_SubclassGrant() {
	stored := testutils.NewTestCharacter(testutils.TestUserID)
	stored.ClassName = "Warlock"
	s.expectUpdate(stored)

	output, err := s.orchestrator.LearnSpells(s.ctx, &character.LearnSpellsInput{
		UserID:      testutils.TestUserID,
		CharacterID: stored.ID,
		SpellNames:  []string{"Burning Hands"},
	})
	s.Require().NoError(err)
	s.Equal(1, output.Added)
}

func (s *OrchestratorTestSuite) TestGetGrimoire() {
	stored := testutils.NewTestCharacter(testutils.TestUserID)
	stored.Level = 5
	stored.SpellSlots = entities.SpellSlots{
		"3": {Current: 1, Max: 2},
		"1": {Current: 4, Max: 4},
		"2": {Current: 0, Max: 3},
	}
	stored.SpellsKnown = []entities.KnownSpell{
		{Name: "Spirit Guardians", Level: 3},
		{Name: "Sacred Flame", Level: entities.UnknownSpellLevel},
		{Name: "Light", Level: 0},
		{Name: "Homebrew Smite", Level: 2},
	}
	s.expectGet(stored)

	output, err := s.orchestrator.GetGrimoire(s.ctx, &character.GetGrimoireInput{
		UserID:      testutils.TestUserID,
		CharacterID: stored.ID,
	})
	s.Require().NoError(err)

	g := output.Grimoire
	s.Equal(3, g.ProficiencyBonus)
	s.Require().NotNil(g.Spellcasting)
	s.Equal("Wisdom", g.Spellcasting.Ability)
	s.Require().Len(g.ByLevel[0], 2)
	s.Equal("Light", g.ByLevel[0][0].Name)
	s.Equal("Sacred Flame", g.ByLevel[0][1].Name)
	s.Require().Len(g.ByLevel[3], 1)
	s.Empty(g.ByLevel[1])
	s.Equal([]string{"Homebrew Smite"}, g.Unresolved)
	s.Equal([]character.SlotLevel{
		{Level: "1", Current: 4, Max: 4},
		{Level: "2", Current: 0, Max: 3},
		{Level: "3", Current: 1, Max: 2},
	}, g.Slots)
	s.Equal(5, g.TotalCurrent)
	s.Equal(9, g.TotalMax)
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

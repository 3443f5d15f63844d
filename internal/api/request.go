package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fairway/settlement-engine/internal/model"
)

// ScoreLine is a player's gross scores as sent by clients. A null entry
// means the hole has not been entered.
type ScoreLine struct {
	PlayerID string `json:"player_id" validate:"required"`
	Gross    []*int `json:"gross" validate:"len=18"`
}

// AllocationLine is the strokes a player receives on each hole.
type AllocationLine struct {
	PlayerID string `json:"player_id" validate:"required"`
	Strokes  []int  `json:"strokes" validate:"len=18"`
}

// GameSpec carries exactly one game configuration, selected by Type.
type GameSpec struct {
	Type       model.GameType          `json:"type" validate:"required,oneof=nassau match_play stroke_play skins"`
	Nassau     *model.NassauConfig     `json:"nassau,omitempty" validate:"required_if=Type nassau"`
	MatchPlay  *model.MatchPlayConfig  `json:"match_play,omitempty" validate:"required_if=Type match_play"`
	StrokePlay *model.StrokePlayConfig `json:"stroke_play,omitempty" validate:"required_if=Type stroke_play"`
	Skins      *model.SkinsConfig      `json:"skins,omitempty" validate:"required_if=Type skins"`
}

func (g GameSpec) config() model.GameConfig {
	switch g.Type {
	case model.GameNassau:
		return *g.Nassau
	case model.GameMatchPlay:
		return *g.MatchPlay
	case model.GameStrokePlay:
		return *g.StrokePlay
	case model.GameSkins:
		return *g.Skins
	}
	return nil
}

// RoundRequest describes a round and its wagers.
type RoundRequest struct {
	Scores      []ScoreLine                `json:"scores" validate:"required,min=2,dive"`
	Allocations []AllocationLine           `json:"allocations" validate:"dive"`
	Names       map[string]string          `json:"names"`
	Mode        model.PairingMode          `json:"mode" validate:"required,oneof=individual head_to_head teams"`
	Sides       []model.Side               `json:"sides" validate:"required_unless=Mode individual"`
	Selection   model.HoleSelection        `json:"selection" validate:"required,oneof=18 front9 back9"`
	Scoring     model.ScoringMode          `json:"scoring" validate:"omitempty,oneof=best_ball aggregate"`
	Game        GameSpec                   `json:"game"`
	Presses     []model.ManualPressRequest `json:"presses"`
	SideBets    *model.SideBetConfig       `json:"side_bets"`
	Greenies    map[string]int             `json:"greenies"`
	Sandies     map[string]int             `json:"sandies"`
	Pars        []int                      `json:"pars" validate:"omitempty,len=18,dive,min=1"`
}

// SettleRequest is the JSON body for POST /api/v1/settlements.
type SettleRequest struct {
	RoundID string `json:"round_id" validate:"required"`
	RoundRequest
}

// PressRequest is the JSON body for POST /api/v1/presses/validate.
type PressRequest struct {
	RoundRequest
	Request model.ManualPressRequest `json:"request"`
}

// Args converts the request into engine arguments.
func (r RoundRequest) Args() model.SettlementArgs {
	args := model.SettlementArgs{
		Names:     r.Names,
		Mode:      r.Mode,
		Sides:     r.Sides,
		Selection: r.Selection,
		Scoring:   r.Scoring,
		Game:      r.Game.config(),
		Presses:   r.Presses,
		SideBets:  r.SideBets,
		Greenies:  r.Greenies,
		Sandies:   r.Sandies,
	}
	for _, line := range r.Scores {
		s := model.PlayerScore{PlayerID: line.PlayerID}
		for i, g := range line.Gross {
			if g != nil && i < model.HoleCount {
				s.Gross[i] = *g
			}
		}
		args.Scores = append(args.Scores, s)
	}
	for _, line := range r.Allocations {
		a := model.StrokeAllocation{PlayerID: line.PlayerID}
		copy(a.Strokes[:], line.Strokes)
		args.Allocations = append(args.Allocations, a)
	}
	copy(args.Pars[:], r.Pars)
	return args
}

// Validator checks request structs and reports fields by their JSON names.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate returns a single error listing every failed field.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("validation error: %s", strings.Join(msgs, ", "))
}

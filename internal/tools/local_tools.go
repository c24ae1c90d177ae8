// In file: internal/tools/local_tools.go
package tools

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// This file contains the deterministic, locally computed tools: the clock,
// the multiplier, the password procedure and the screen-time advisor. None
// of them reach the network.

// TimeLayout is the timestamp format the clock tool emits. The gateway's
// time fast path parses this exact layout to build its "Il est HHhMM" reply.
const TimeLayout = "2006-01-02 15:04:05"

// --- GetTime ---

type TimeTool struct {
	now func() time.Time
}

var _ ToolExecutor = (*TimeTool)(nil)

func NewTimeTool() *TimeTool {
	return &TimeTool{now: time.Now}
}

func (t *TimeTool) Name() string { return "GetTime" }

func (t *TimeTool) Execute(_ context.Context, _ map[string]string) (any, error) {
	return t.now().Format(TimeLayout), nil
}

// --- multiply ---

type MultiplyTool struct{}

var _ ToolExecutor = (*MultiplyTool)(nil)

func NewMultiplyTool() *MultiplyTool {
	return &MultiplyTool{}
}

func (t *MultiplyTool) Name() string { return "multiply" }

func (t *MultiplyTool) Execute(_ context.Context, args map[string]string) (any, error) {
	a, err := strconv.ParseFloat(args["a"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid operand a=%q: %w", args["a"], err)
	}
	b, err := strconv.ParseFloat(args["b"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid operand b=%q: %w", args["b"], err)
	}
	return a * b, nil
}

// --- retrieve_password ---

// PasswordTool explains the Streamtech password-reset procedure. The text
// is final and ready to show to the user (after rephrasing).
type PasswordTool struct{}

var _ ToolExecutor = (*PasswordTool)(nil)

func NewPasswordTool() *PasswordTool {
	return &PasswordTool{}
}

func (t *PasswordTool) Name() string { return "retrieve_password" }

func (t *PasswordTool) Execute(_ context.Context, _ map[string]string) (any, error) {
	return "Pour réinitialiser votre mot de passe Streamtech, vous pouvez suivre les étapes suivantes :\n\n" +
		"1. Allez sur le site web de Streamtech.\n" +
		"2. Cliquez sur l’onglet « Mon compte » en haut à droite de la page.\n" +
		"3. Sélectionnez « Mot de passe oublié ».\n" +
		"4. Entrez votre adresse e-mail associée à votre compte Streamtech.\n" +
		"5. Cliquez sur « Réinitialiser le mot de passe » pour recevoir un e-mail de réinitialisation.\n" +
		"6. Suivez les instructions contenues dans l’e-mail pour définir un nouveau mot de passe.\n\n" +
		"Si vous rencontrez des difficultés, vous pouvez contacter l’équipe de support client Streamtech pour obtenir de l’aide.", nil
}

// --- recommend_screen_time ---

// ScreenTimeTool recommends a screen-time budget based on the current hour.
type ScreenTimeTool struct {
	now func() time.Time
}

var _ ToolExecutor = (*ScreenTimeTool)(nil)

func NewScreenTimeTool() *ScreenTimeTool {
	return &ScreenTimeTool{now: time.Now}
}

func (t *ScreenTimeTool) Name() string { return "recommend_screen_time" }

func (t *ScreenTimeTool) Execute(_ context.Context, _ map[string]string) (any, error) {
	now := t.now()
	hour := now.Hour()

	var recommendation string
	switch {
	case hour >= 8 && hour < 20:
		recommendation = "📱 Temps d'écran recommandé : 1 heure.\n" +
			"Profitez d'un film ou d'une série, puis pensez à faire une pause."
	case hour >= 20 && hour < 24:
		recommendation = "🌙 Temps d'écran recommandé : 2 heures.\n" +
			"C'est le moment idéal pour regarder un bon film avant de dormir."
	default:
		recommendation = "😴 Il est tard.\n" +
			"Nous vous recommandons d'aller dormir et de reprendre le streaming plus tard."
	}

	return fmt.Sprintf("🕒 Heure actuelle : %s\n\n%s", now.Format("15:04"), recommendation), nil
}

// --- compare_ratings ---

// CompareRatingsTool compares two movie ratings and names the winner.
type CompareRatingsTool struct{}

var _ ToolExecutor = (*CompareRatingsTool)(nil)

func NewCompareRatingsTool() *CompareRatingsTool {
	return &CompareRatingsTool{}
}

func (t *CompareRatingsTool) Name() string { return "compare_ratings" }

func (t *CompareRatingsTool) Execute(_ context.Context, args map[string]string) (any, error) {
	rating1, err := strconv.ParseFloat(args["movie1_rating"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid movie1_rating=%q: %w", args["movie1_rating"], err)
	}
	rating2, err := strconv.ParseFloat(args["movie2_rating"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid movie2_rating=%q: %w", args["movie2_rating"], err)
	}
	title1 := args["movie1_title"]
	title2 := args["movie2_title"]

	var best string
	switch {
	case rating1 > rating2:
		best = title1
	case rating2 > rating1:
		best = title2
	default:
		best = "Égalité parfaite 🎬"
	}

	return fmt.Sprintf("🎥 %s : ⭐ %s\n🎥 %s : ⭐ %s\n\n🏆 Film le mieux noté : %s",
		title1, FormatFloat(rating1), title2, FormatFloat(rating2), best), nil
}

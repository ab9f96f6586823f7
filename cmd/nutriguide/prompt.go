package nutriguide

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/NextGenXplorer/NutriGuide/internal/model"
	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

// stdinIsTerminal is replaced in tests to drive the onboarding prompts.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptLine prints label (with the default in brackets) and reads one line.
// An empty answer returns def.
func promptLine(r *bufio.Reader, w io.Writer, label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(w, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(w, "%s: ", label)
	}
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// promptProfile walks through the onboarding questions. Existing values are
// offered as defaults.
func promptProfile(in io.Reader, w io.Writer, current *model.UserProfile) (model.UserProfile, error) {
	r := bufio.NewReader(in)
	p := model.UserProfile{}
	if current != nil {
		p = *current
	}
	defInt := func(v int) string {
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	}
	defFloat := func(v float64) string {
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	fmt.Fprintln(w, "Let's set up your NutriGuide profile.")
	var err error
	if p.Name, err = promptLine(r, w, "Name", p.Name); err != nil {
		return p, err
	}
	ageStr, err := promptLine(r, w, "Age", defInt(p.Age))
	if err != nil {
		return p, err
	}
	if p.Age, err = strconv.Atoi(ageStr); err != nil {
		return p, fmt.Errorf("invalid age %q", ageStr)
	}
	heightStr, err := promptLine(r, w, "Height (cm)", defFloat(p.HeightCm))
	if err != nil {
		return p, err
	}
	if p.HeightCm, err = strconv.ParseFloat(heightStr, 64); err != nil {
		return p, fmt.Errorf("invalid height %q", heightStr)
	}
	weightStr, err := promptLine(r, w, "Weight (kg)", defFloat(p.WeightKg))
	if err != nil {
		return p, err
	}
	if p.WeightKg, err = strconv.ParseFloat(weightStr, 64); err != nil {
		return p, fmt.Errorf("invalid weight %q", weightStr)
	}
	gender, err := promptLine(r, w, "Gender (male/female/other)", string(p.Gender))
	if err != nil {
		return p, err
	}
	p.Gender = model.Gender(gender)
	activity, err := promptLine(r, w, "Activity level (low/moderate/high)", orDefault(string(p.ActivityLevel), string(model.ActivityModerate)))
	if err != nil {
		return p, err
	}
	p.ActivityLevel = model.ActivityLevel(activity)
	goal, err := promptLine(r, w, "Goal (lose/maintain/gain)", orDefault(string(p.Goal), string(model.GoalMaintain)))
	if err != nil {
		return p, err
	}
	p.Goal = model.Goal(goal)
	diet, err := promptLine(r, w, "Dietary preference (vegetarian/vegan/non-veg)", orDefault(string(p.DietaryPreference), string(model.DietVegetarian)))
	if err != nil {
		return p, err
	}
	p.DietaryPreference = model.DietaryPreference(diet)

	p = service.NormalizeProfile(p)
	if err := service.ValidateProfile(p); err != nil {
		return p, err
	}
	return p, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

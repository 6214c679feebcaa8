// internal/replay/scenario.go
package replay

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Scenario modes.
const (
	// ModeFramework mounts the markup as a framework tree behind the bridge,
	// so framework events are recorded alongside default actions.
	ModeFramework = "framework"
	// ModeDocument imports the markup straight into a document.
	ModeDocument = "document"
)

// Scenario is a replayable interaction script: markup, the boxes layout
// would have produced, and the input events to feed in.
type Scenario struct {
	Name     string    `mapstructure:"name" validate:"required"`
	Mode     string    `mapstructure:"mode" validate:"omitempty,oneof=framework document"`
	BaseURL  string    `mapstructure:"base_url" validate:"omitempty,url"`
	Viewport *Viewport `mapstructure:"viewport"`
	HTML     string    `mapstructure:"html" validate:"required"`
	Layout   []Box     `mapstructure:"layout" validate:"dive"`
	Events   []Step    `mapstructure:"events" validate:"required,min=1,dive"`
	Expect   *Expect   `mapstructure:"expect"`

	// Source is the file the scenario was loaded from, if any.
	Source string `mapstructure:"-"`
}

// Viewport overrides the configured document viewport.
type Viewport struct {
	Width  int     `mapstructure:"width" validate:"gte=0"`
	Height int     `mapstructure:"height" validate:"gte=0"`
	Scale  float64 `mapstructure:"scale" validate:"gte=0"`
	Scheme string  `mapstructure:"color_scheme" validate:"omitempty,oneof=light dark"`
}

// Box assigns a layout box to every node matching an XPath selector. The
// location is relative to the layout parent.
type Box struct {
	Selector      string  `mapstructure:"selector" validate:"required"`
	X             float64 `mapstructure:"x"`
	Y             float64 `mapstructure:"y"`
	Width         float64 `mapstructure:"width" validate:"gte=0"`
	Height        float64 `mapstructure:"height" validate:"gte=0"`
	ContentWidth  float64 `mapstructure:"content_width" validate:"gte=0"`
	ContentHeight float64 `mapstructure:"content_height" validate:"gte=0"`
	Padding       float64 `mapstructure:"padding" validate:"gte=0"`
	Border        float64 `mapstructure:"border" validate:"gte=0"`
}

// Step is one input event. Pointer events are aimed with X and Y; the
// target is the node under the point unless Selector names one. With At set,
// the point is the centre of that node's border box offset by X and Y.
// Keyboard and IME events go to the focused node.
type Step struct {
	Type     string   `mapstructure:"type" validate:"required,oneof=mousemove mousedown mouseup click keydown keyup ime hover"`
	X        float64  `mapstructure:"x"`
	Y        float64  `mapstructure:"y"`
	Selector string   `mapstructure:"selector"`
	At       string   `mapstructure:"at"`
	Buttons  []string `mapstructure:"buttons" validate:"dive,oneof=primary secondary auxiliary fourth fifth"`
	Key      string   `mapstructure:"key"`
	Code     string   `mapstructure:"code"`
	Text     string   `mapstructure:"text"`
	Mods     []string `mapstructure:"mods" validate:"dive,oneof=shift ctrl alt meta"`
	Ime      string   `mapstructure:"ime" validate:"omitempty,oneof=enabled preedit commit disabled"`
}

// Expect lists the assertions checked after the script ran.
type Expect struct {
	// Focus is an XPath selector for the focused node, or "none".
	Focus       string        `mapstructure:"focus"`
	Checked     []CheckedWant `mapstructure:"checked" validate:"dive"`
	Values      []ValueWant   `mapstructure:"values" validate:"dive"`
	Navigations []string      `mapstructure:"navigations"`
	// Events are framework events as "name@selector".
	Events []string `mapstructure:"events"`
}

// CheckedWant expects the checkedness of the control matching Selector.
type CheckedWant struct {
	Selector string `mapstructure:"selector" validate:"required"`
	Checked  bool   `mapstructure:"checked"`
}

// ValueWant expects the edited text of the control matching Selector.
type ValueWant struct {
	Selector string `mapstructure:"selector" validate:"required"`
	Value    string `mapstructure:"value"`
}

var validate = validator.New()

// Validate checks the scenario's structure.
func (s *Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid scenario %q: %s", s.Name, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid scenario %q: %w", s.Name, err)
	}
	return nil
}

func (s *Scenario) mode() string {
	if s.Mode == "" {
		return ModeFramework
	}
	return s.Mode
}

// LoadScenario reads a scenario file. The format follows the extension
// (yaml, json, toml...); a leading ~ is expanded.
func LoadScenario(path string) (*Scenario, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expanding scenario path %q: %w", path, err)
	}
	v := viper.New()
	v.SetConfigFile(expanded)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading scenario %q: %w", expanded, err)
	}
	s, err := decode(v)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", expanded, err)
	}
	s.Source = expanded
	return s, nil
}

// ParseScenario reads a YAML scenario from r.
func ParseScenario(r io.Reader) (*Scenario, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Scenario, error) {
	var s Scenario
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

package lifx

// Light is a bulb as returned by GET /lights/{selector}.
type Light struct {
	ID               string   `json:"id"`
	UUID             string   `json:"uuid"`
	Label            string   `json:"label"`
	Connected        bool     `json:"connected"`
	Power            string   `json:"power"`
	Color            HSBK     `json:"color"`
	Brightness       float64  `json:"brightness"`
	Group            NamedRef `json:"group"`
	Location         NamedRef `json:"location"`
	Product          Product  `json:"product"`
	Effect           string   `json:"effect,omitempty"`
	LastSeen         string   `json:"last_seen,omitempty"`
	SecondsSinceSeen float64  `json:"seconds_since_seen,omitempty"`
}

// HSBK is the hue/saturation/kelvin triple LIFX uses for colour.
// Hue is in degrees, saturation in 0.0-1.0.
type HSBK struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Kelvin     float64 `json:"kelvin"`
}

// NamedRef is the {id, name} pair used for groups and locations.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product describes the hardware model of a light.
type Product struct {
	Name         string       `json:"name"`
	Identifier   string       `json:"identifier"`
	Company      string       `json:"company"`
	Capabilities Capabilities `json:"capabilities"`
}

// Capabilities lists what a product supports.
type Capabilities struct {
	HasColor             bool `json:"has_color"`
	HasVariableColorTemp bool `json:"has_variable_color_temp"`
	HasIR                bool `json:"has_ir"`
	HasChain             bool `json:"has_chain"`
	HasMatrix            bool `json:"has_matrix"`
	HasMultizone         bool `json:"has_multizone"`
}

// Scene is a stored snapshot of per-light states, from GET /scenes.
type Scene struct {
	UUID      string       `json:"uuid"`
	Name      string       `json:"name"`
	Account   SceneAccount `json:"account"`
	States    []SceneState `json:"states"`
	CreatedAt int64        `json:"created_at"`
	UpdatedAt int64        `json:"updated_at"`
}

// SceneAccount identifies the owner of a scene.
type SceneAccount struct {
	UUID string `json:"uuid"`
}

// SceneState is the state a scene applies to one selector.
type SceneState struct {
	Selector   string  `json:"selector"`
	Power      string  `json:"power"`
	Brightness float64 `json:"brightness"`
	Color      HSBK    `json:"color"`
}

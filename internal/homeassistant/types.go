package homeassistant

// envelope is the Supervisor API response wrapper.
type envelope[T any] struct {
	Result  string `json:"result"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// VersionInfo is the update block shared by /core/info, /os/info and /supervisor/info.
type VersionInfo struct {
	Version         string `json:"version"`
	VersionLatest   string `json:"version_latest"`
	UpdateAvailable bool   `json:"update_available"`
}

// Addon is one entry of /addons.
type Addon struct {
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Version         string `json:"version"`
	VersionLatest   string `json:"version_latest"`
	UpdateAvailable bool   `json:"update_available"`
}

// DisplayName returns the add-on name, falling back to its slug.
func (a Addon) DisplayName() string {
	switch {
	case a.Name != "":
		return a.Name
	case a.Slug != "":
		return a.Slug
	default:
		return "unknown"
	}
}

type addonList struct {
	Addons []Addon `json:"addons"`
}

// Entity is a Home Assistant entity state from /core/api/states.
type Entity struct {
	ID          string     `json:"entity_id"`
	State       string     `json:"state"`
	Attributes  Attributes `json:"attributes"`
	LastChanged string     `json:"last_changed"`
	LastUpdated string     `json:"last_updated"`
}

// Attributes holds the entity attributes this service reads.
type Attributes struct {
	FriendlyName string `json:"friendly_name"`
	DeviceClass  string `json:"device_class"`
}

// Domain returns the part of the entity id before the first dot.
func (e Entity) Domain() string {
	for i := 0; i < len(e.ID); i++ {
		if e.ID[i] == '.' {
			return e.ID[:i]
		}
	}
	return ""
}

// Name returns the friendly name, falling back to the entity id.
func (e Entity) Name() string {
	if e.Attributes.FriendlyName != "" {
		return e.Attributes.FriendlyName
	}
	return e.ID
}

// StateUnavailable is the state Home Assistant reports for unreachable entities.
const StateUnavailable = "unavailable"

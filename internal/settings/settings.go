package settings

// Provider exposes the handful of application settings the expiry
// lifecycle consumes. The persisted settings store lives in another
// service; here the values come from process configuration.
type Provider interface {
	EmailNotificationsEnabled() bool
	ApplicationTitle() string
	ApplicationURL() string
}

type Static struct {
	NotificationsEnabled bool
	Title                string
	URL                  string
}

func (s Static) EmailNotificationsEnabled() bool { return s.NotificationsEnabled }
func (s Static) ApplicationTitle() string        { return s.Title }
func (s Static) ApplicationURL() string          { return s.URL }

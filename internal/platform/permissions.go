package platform

const (
	MessagePermissionsOK      = "Permissions granted"
	MessagePermissionsMissing = "Permissions required: Screen Recording and Accessibility"
)

// PermissionStatus is a point-in-time view of the grants the bridge needs.
type PermissionStatus struct {
	ScreenRecording bool   `yaml:"screen_recording" json:"screen_recording"`
	Accessibility   bool   `yaml:"accessibility"    json:"accessibility"`
	Message         string `yaml:"message"          json:"message"`
}

// CheckPermissions queries c. It is never cached; users grant and revoke
// permissions while the bridge runs.
func CheckPermissions(c PermissionChecker) PermissionStatus {
	s := PermissionStatus{
		ScreenRecording: c.ScreenRecording(),
		Accessibility:   c.Accessibility(),
	}
	if s.ScreenRecording && s.Accessibility {
		s.Message = MessagePermissionsOK
	} else {
		s.Message = MessagePermissionsMissing
	}
	return s
}

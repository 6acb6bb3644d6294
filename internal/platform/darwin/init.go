//go:build darwin && cgo

package darwin

import "github.com/mj1618/desktop-bridge/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Inputter:    NewInputter(),
			Display:     NewDisplay(),
			Permissions: NewPermissions(),
		}, nil
	}
	platform.RequestPermissionsFunc = requestPermissions
}

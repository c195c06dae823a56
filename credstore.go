// Package credstore stores secrets in the operating system's native
// credential vault behind a single portable contract.
//
// The portable contract lives in pkg/keystore. This package selects the
// backend for the platform the binary was built for: the Windows
// credential store on Windows, the platform keyring (macOS Keychain or
// Linux Secret Service) elsewhere.
//
//	builder := credstore.DefaultBuilder()
//	backend, err := builder.Build("my-service", "my-user")
//	if err != nil {
//	    return err
//	}
//	if err := backend.SetSecret("hunter2"); err != nil {
//	    return err
//	}
package credstore

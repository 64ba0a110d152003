//go:build !protogen

package directory

// NewClient returns no client without generated stubs; callers fall
// back to the database-backed Store.
func NewClient(_ string) (Client, error) {
	return nil, nil
}

package window

import "errors"

// releaser frees acquired resources in reverse order of acquisition.
type releaser []func() error

func (r *releaser) add(release func() error) {
	*r = append(*r, release)
}

// run calls all release functions once, later calls do nothing.
// Every function is called even if an earlier one fails.
func (r *releaser) run() error {
	var errs []error
	for i := len(*r) - 1; i >= 0; i-- {
		if err := (*r)[i](); err != nil {
			errs = append(errs, err)
		}
	}
	*r = nil
	return errors.Join(errs...)
}

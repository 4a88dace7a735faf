package main

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// flagReader reads a run of flags and keeps the first lookup error, so
// setup code can read everything and check once.
type flagReader struct {
	fs  *pflag.FlagSet
	err error
}

func readFlags(fs *pflag.FlagSet) *flagReader { return &flagReader{fs: fs} }

func (r *flagReader) fail(name string, err error) {
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("failed to get %s flag: %w", name, err)
	}
}

func (r *flagReader) String(name string) string {
	v, err := r.fs.GetString(name)
	r.fail(name, err)
	return v
}

func (r *flagReader) Int(name string) int {
	v, err := r.fs.GetInt(name)
	r.fail(name, err)
	return v
}

func (r *flagReader) Bool(name string) bool {
	v, err := r.fs.GetBool(name)
	r.fail(name, err)
	return v
}

func (r *flagReader) Duration(name string) time.Duration {
	v, err := r.fs.GetDuration(name)
	r.fail(name, err)
	return v
}

func (r *flagReader) Err() error { return r.err }

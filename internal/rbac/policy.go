package rbac

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadPolicy decodes a YAML policy document and validates it.
//
//	staff_defaults:
//	  supplies: [view, create, edit]
//	routes:
//	  /inventory/view-items: {module: supplies, action: view}
func LoadPolicy(r io.Reader) (Policy, error) {
	var p Policy
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Policy{}, fmt.Errorf(errPolicyDecodeFmt, err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// LoadPolicyFile reads a policy from path
func LoadPolicyFile(path string) (Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return Policy{}, fmt.Errorf(errPolicyOpenFmt, err)
	}
	defer f.Close()
	return LoadPolicy(f)
}

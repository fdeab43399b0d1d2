package auth

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Permissions maps role -> []permission
type Permissions map[string][]string

type permissionsFile struct {
	Roles map[string][]string `yaml:"roles"`
}

// LoadPermissions loads a permissions.yml file and returns a role->permissions map.
func LoadPermissions(path string) (Permissions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf permissionsFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return nil, err
	}
	return Permissions(pf.Roles), nil
}

// DefaultPermissions is the compiled-in role map used when no permissions
// file is configured. STAFF is every authenticated user; DOCTOR and NURSE
// add the clinical write permissions. The entity services enforce the same
// rules again, so this gate only controls routing.
func DefaultPermissions() Permissions {
	view := []string{
		"client:view", "client:create", "client:search",
		"program:view", "enrollment:view", "prescription:view",
		"metric:view", "encounter:view", "encounter:create",
		"report:view", "settings:manage",
	}
	clinical := []string{
		"program:create", "enrollment:create", "enrollment:update",
		"enrollment:delete", "metric:create", "metric:delete",
		"encounter:delete", "encounter:update",
	}
	doctor := []string{
		"prescription:create", "prescription:update", "prescription:delete",
		"client:delete", "program:delete",
	}
	return Permissions{
		"STAFF":  view,
		"NURSE":  clinical,
		"DOCTOR": append(append([]string{}, clinical...), doctor...),
	}
}

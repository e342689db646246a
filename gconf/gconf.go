package gconf

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// ReadStore is the part of vault.ReadOnlyKVStore needed to load.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of vault.KVStore needed to save.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// ValidMarshaler can check and serialize itself.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is a singleton stored once per package.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

// keyPrefix keeps singletons apart from orm buckets.
const keyPrefix = "_c:"

func key(pkg string) []byte {
	return append([]byte(keyPrefix), pkg...)
}

// Save validates src and stores it as the singleton of pkg.
func Save(db Store, pkg string, src ValidMarshaler) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s configuration", pkg)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %s configuration", pkg)
	}
	return db.Set(key(pkg), raw)
}

// Load reads the singleton of pkg into dst. It fails with ErrNotFound
// when nothing was saved yet.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	raw, err := read(db, pkg)
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %s configuration: %s", pkg, err)
	}
	return nil
}

// Exists is true once Save succeeded for pkg.
func Exists(db ReadStore, pkg string) (bool, error) {
	raw, err := read(db, pkg)
	return raw != nil, err
}

func read(db ReadStore, pkg string) ([]byte, error) {
	raw, err := db.Get(key(pkg))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return raw, nil
}

// InitConfig loads genesis section conf.<pkg> into conf and saves it. It
// fails with ErrNotFound when genesis has no such section.
func InitConfig(db Store, opts vault.Options, pkg string, conf Configuration) error {
	var sections vault.Options
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return err
	}
	if _, ok := sections[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "genesis has no %q configuration", pkg)
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return err
	}
	return Save(db, pkg, conf)
}

// QueryHandler serves the raw singleton of pkg on exact key queries.
func QueryHandler(pkg string) vault.QueryHandler {
	return vault.QueryFunc(func(db vault.ReadOnlyKVStore, mod string, _ []byte) ([]vault.Model, error) {
		if mod != vault.KeyQueryMod {
			return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod %q", mod)
		}
		raw, err := read(db, pkg)
		if err != nil || raw == nil {
			return nil, err
		}
		return []vault.Model{vault.Pair([]byte(pkg), raw)}, nil
	})
}

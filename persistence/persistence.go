package persistence

import (
	"gopkg.in/yaml.v3"

	"github.com/limoiie/dofu/capability"
	"github.com/limoiie/dofu/dofuerrors"
	"github.com/limoiie/dofu/module"
)

// Load reads path's YAML journal, returning an empty meta map if the
// file does not exist (spec.md section 4.9).
func Load(fs capability.FsOps, path string) (map[string]*module.EquipmentMetaInfo, error) {
	exists, err := fs.Exists(path)
	if err != nil {
		return nil, dofuerrors.Wrapf(err, "checking journal %s", path)
	}
	if !exists {
		return make(map[string]*module.EquipmentMetaInfo), nil
	}

	raw, err := fs.ReadFile(path)
	if err != nil {
		return nil, dofuerrors.Wrapf(err, "reading journal %s", path)
	}

	var fw fileWire
	if err := yaml.Unmarshal([]byte(raw), &fw); err != nil {
		return nil, dofuerrors.NewJournalCorruption(path, err)
	}

	out := make(map[string]*module.EquipmentMetaInfo, len(fw.Meta))
	for name, mw := range fw.Meta {
		m, err := metaFromWire(mw)
		if err != nil {
			return nil, dofuerrors.NewJournalCorruption(path, err)
		}
		out[name] = m
	}
	return out, nil
}

// Save atomically writes meta to path inside a GuardFileUpdate scope: a
// unique temp path is written, then renamed over path on success (or
// discarded on dry-run / error), per spec.md section 4.9.
func Save(fs capability.FsOps, path string, meta map[string]*module.EquipmentMetaInfo) error {
	fw := fileWire{Meta: make(map[string]moduleMetaWire, len(meta))}
	for name, m := range meta {
		fw.Meta[name] = metaToWire(m)
	}

	out, err := yaml.Marshal(fw)
	if err != nil {
		return dofuerrors.Wrapf(err, "marshaling journal")
	}

	return fs.GuardFileUpdate(path, func(tmpPath string) error {
		return fs.WriteFile(tmpPath, string(out))
	})
}

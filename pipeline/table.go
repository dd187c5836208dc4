package pipeline

import (
	"fmt"
	"os"

	"github.com/hupe1980/scriptmesh/core"
	"gopkg.in/yaml.v3"
)

// Entry configures a single role.
type Entry struct {
	Instruction string   `yaml:"instruction"`
	Upstream    []string `yaml:"upstream"`
}

// Table maps role identifiers to their configuration. Keys are plain strings
// so that files naming unknown roles can be reported by NewGraph.
type Table map[string]Entry

// DefaultTable returns the built-in pipeline. The content strategist lists
// itself as upstream; NewGraph drops that self reference.
func DefaultTable() Table {
	return Table{
		string(core.RoleContentStrategist): {
			Instruction: contentStrategistInstruction,
			Upstream:    []string{string(core.RoleContentStrategist)},
		},
		string(core.RoleResearchAssistant): {
			Instruction: researchAssistantInstruction,
			Upstream:    []string{string(core.RoleContentStrategist)},
		},
		string(core.RoleTechnicalWriter): {
			Instruction: technicalWriterInstruction,
			Upstream:    []string{string(core.RoleContentStrategist), string(core.RoleResearchAssistant)},
		},
		string(core.RoleEditor): {
			Instruction: editorInstruction,
			Upstream:    []string{string(core.RoleTechnicalWriter)},
		},
		string(core.RoleFactChecker): {
			Instruction: factCheckerInstruction,
			Upstream:    []string{string(core.RoleEditor)},
		},
		string(core.RoleFormatSpecialist): {
			Instruction: formatSpecialistInstruction,
			Upstream:    []string{string(core.RoleFactChecker)},
		},
		string(core.RoleVoiceProcessingExpert): {
			Instruction: voiceProcessingExpertInstruction,
			Upstream:    []string{string(core.RoleFormatSpecialist)},
		},
		string(core.RoleQualityAssurance): {
			Instruction: qualityAssuranceInstruction,
			Upstream:    []string{string(core.RoleVoiceProcessingExpert)},
		},
	}
}

type tableFile struct {
	Roles Table `yaml:"roles"`
}

// LoadTable reads a YAML override file and merges it over DefaultTable. A
// role present in the file replaces its upstream list; an empty instruction
// keeps the built-in prompt.
//
//	roles:
//	  editor:
//	    upstream: [technical_writer]
func LoadTable(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: reading %s: %w", path, err)
	}
	return ParseTable(raw)
}

// ParseTable merges YAML bytes over DefaultTable.
func ParseTable(raw []byte) (Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("pipeline: parsing table: %w", err)
	}
	table := DefaultTable()
	for name, entry := range f.Roles {
		base, ok := table[name]
		if !ok {
			table[name] = entry
			continue
		}
		if entry.Instruction != "" {
			base.Instruction = entry.Instruction
		}
		base.Upstream = entry.Upstream
		table[name] = base
	}
	return table, nil
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/gopasspw/gitform"
	"github.com/gopasspw/gitform/internal/selection"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

const schemaBase = "https://github.com/gopasspw/gitform/"

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema <catalog|selection>",
		Short:     "Print the JSON schema of the catalog or the selection file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"catalog", "selection"},
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := reflectSchema(args[0])
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal schema: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))

			return err
		},
	}
}

func reflectSchema(name string) (*jsonschema.Schema, error) {
	r := new(jsonschema.Reflector)

	var schema *jsonschema.Schema
	switch name {
	case "catalog":
		schema = r.Reflect([]gitform.Descriptor{})
		schema.Title = "gitform option catalog"
		schema.Description = "Descriptors of the configurable git options"
	case "selection":
		schema = r.Reflect(&selection.File{})
		schema.Title = "gitform selection"
		schema.Description = "Enabled git options and aliases"
	default:
		return nil, fmt.Errorf("unknown schema %q, want catalog or selection", name)
	}
	schema.ID = jsonschema.ID(schemaBase + name + ".schema.json")

	return schema, nil
}

package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paasboot/paasboot/internal/config"
)

// saveAndRestorePlanFactories saves and restores plan factory functions.
func saveAndRestorePlanFactories(t *testing.T) {
	origLoadDescriptor := loadDescriptor
	origFindDescriptorFile := findDescriptorFile
	origPrintPlan := printPlan

	t.Cleanup(func() {
		loadDescriptor = origLoadDescriptor
		findDescriptorFile = origFindDescriptorFile
		printPlan = origPrintPlan
	})
}

func validDescriptor() *config.Descriptor {
	strPtr := func(s string) *string { return &s }
	intPtr := func(n int) *int { return &n }
	return &config.Descriptor{
		Infrastructure: strPtr("ec2"),
		Machine:        strPtr("ami-0123abcd"),
		InstanceType:   strPtr("m1.large"),
		Keyname:        strPtr("appscale"),
		Group:          strPtr("appscale"),
		Min:            intPtr(3),
		Max:            intPtr(5),
	}
}

func TestPlan_WithInjection(t *testing.T) {
	saveAndRestorePlanFactories(t)

	t.Run("renders the resolved plan", func(t *testing.T) {
		loadDescriptor = func(path string) (*config.Descriptor, error) {
			assert.Equal(t, "test.yaml", path)
			return validDescriptor(), nil
		}

		var printed string
		printPlan = func(s string) { printed = s }

		require.NoError(t, Plan(context.Background(), "test.yaml", false))
		assert.Contains(t, printed, "Deployment Plan")
		assert.Contains(t, printed, "replication factor 3")
	})

	t.Run("json output decodes", func(t *testing.T) {
		loadDescriptor = func(_ string) (*config.Descriptor, error) {
			return validDescriptor(), nil
		}

		var printed string
		printPlan = func(s string) { printed = s }

		require.NoError(t, Plan(context.Background(), "test.yaml", true))

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(printed), &decoded))
		assert.Equal(t, "ec2", decoded["infrastructure"])
	})

	t.Run("auto-detects the default descriptor", func(t *testing.T) {
		findDescriptorFile = func() (string, error) { return "paasboot.yaml", nil }

		var loadedPath string
		loadDescriptor = func(path string) (*config.Descriptor, error) {
			loadedPath = path
			return validDescriptor(), nil
		}
		printPlan = func(string) {}

		require.NoError(t, Plan(context.Background(), "", false))
		assert.Equal(t, "paasboot.yaml", loadedPath)
	})

	t.Run("resolver errors pass through unwrapped", func(t *testing.T) {
		desc := validDescriptor()
		desc.Keyname = nil
		loadDescriptor = func(_ string) (*config.Descriptor, error) { return desc, nil }
		printPlan = func(string) {}

		err := Plan(context.Background(), "test.yaml", false)
		require.Error(t, err)
		assert.Equal(t, config.ExitMissingField, config.ExitCode(err))
	})

	t.Run("invalid min surfaces as range error, not missing database role", func(t *testing.T) {
		desc := validDescriptor()
		zero := 0
		desc.Min = &zero
		loadDescriptor = func(_ string) (*config.Descriptor, error) { return desc, nil }
		printPlan = func(string) {}

		err := Plan(context.Background(), "test.yaml", false)
		require.Error(t, err)
		assert.Equal(t, config.ExitRange, config.ExitCode(err))
	})
}

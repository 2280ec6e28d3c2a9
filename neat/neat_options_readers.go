package neat

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// LoadYAMLOptions loads NEAT options encoded as YAML - the primary configuration format.
func LoadYAMLOptions(r io.Reader) (*Options, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	opts := DefaultOptions()
	if err = yaml.Unmarshal(content, opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode NEAT options from YAML")
	}
	if err = InitLogger(opts.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err = opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid NEAT options")
	}
	return opts, nil
}

// LoadNeatOptions loads a legacy "name value" plain-text configuration, kept for parity with the
// format used to seed the engine's earliest experiments.
func LoadNeatOptions(r io.Reader) (*Options, error) {
	o := DefaultOptions()
	var name, param string
	for {
		_, err := fmt.Fscanf(r, "%s %v\n", &name, &param)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		switch name {
		case "pop_size":
			o.PopSize = cast.ToInt(param)
		case "max_generations":
			o.MaxGenerations = cast.ToInt(param)
		case "fitness_goal":
			v := cast.ToFloat64(param)
			o.FitnessGoal = &v
		case "survival_ratio":
			o.SurvivalRatio = cast.ToFloat64(param)
		case "elitism":
			o.Elitism = cast.ToFloat64(param)
		case "mutation_rate":
			o.MutationRate = cast.ToFloat64(param)
		case "node_cost":
			o.NodeCost = cast.ToFloat64(param)
		case "connection_cost":
			o.ConnectionCost = cast.ToFloat64(param)
		case "compatibility_threshold":
			o.CompatibilityThreshold = cast.ToFloat64(param)
		case "dist_connection_disjoint_coeff":
			o.DistConnectionDisjointCoeff = cast.ToFloat64(param)
		case "dist_connection_weight_coeff":
			o.DistConnectionWeightCoeff = cast.ToFloat64(param)
		case "dist_connection_disabled_coeff":
			o.DistConnectionDisabledCoeff = cast.ToFloat64(param)
		case "dist_node_bias_coeff":
			o.DistNodeBiasCoeff = cast.ToFloat64(param)
		case "dist_node_activation_coeff":
			o.DistNodeActivationCoeff = cast.ToFloat64(param)
		case "dist_node_aggregation_coeff":
			o.DistNodeAggregationCoeff = cast.ToFloat64(param)
		case "initial_weight_mean":
			o.InitialWeightMean = cast.ToFloat64(param)
		case "initial_weight_std_dev":
			o.InitialWeightStdDev = cast.ToFloat64(param)
		case "initial_bias_mean":
			o.InitialBiasMean = cast.ToFloat64(param)
		case "initial_bias_std_dev":
			o.InitialBiasStdDev = cast.ToFloat64(param)
		case "weight_perturb_std_dev":
			o.WeightPerturbStdDev = cast.ToFloat64(param)
		case "bias_perturb_std_dev":
			o.BiasPerturbStdDev = cast.ToFloat64(param)
		case "report_every":
			o.ReportEvery = cast.ToInt(param)
		case "log_level":
			o.LogLevel = param
		default:
			return nil, errors.Errorf("unknown configuration parameter found: %s = %s", name, param)
		}
	}
	if err := InitLogger(o.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// ReadOptionsFromFile reads NEAT options from configFilePath, resolving the file's encoding from
// its extension: ".yml"/".yaml" loads as YAML, anything else as the legacy plain-text format.
func ReadOptionsFromFile(configFilePath string) (*Options, error) {
	configFile, err := os.Open(configFilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config file")
	}
	defer configFile.Close()

	if strings.HasSuffix(configFile.Name(), "yml") || strings.HasSuffix(configFile.Name(), "yaml") {
		return LoadYAMLOptions(configFile)
	}
	return LoadNeatOptions(configFile)
}

package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/cssbox/core/config"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// tracing keys configured by the cssbox.tracing level
var traceKeys = []string{
	"cssbox.cli", "cssbox.core", "cssbox.dom", "cssbox.css", "cssbox.cssom", "cssbox.style",
	"cssbox.text", "cssbox.boxtree", "cssbox.frame", "cssbox.layout", "cssbox.paint",
	"cssbox.raster", "cssbox.resources", "cssbox.session",
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cssbox",
		Short:         "cssbox lays out HTML with CSS",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(); err != nil {
				return err
			}
			return setupTracing(viper.GetString("cssbox.tracing"))
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./cssbox.yaml)")
	flags.StringP("width", "w", "", "layout width, e.g. 600px; empty for shrink-to-fit")
	flags.String("font-size", "13px", "default font size")
	flags.Bool("sync-images", false, "load images while building the box tree")
	flags.Bool("useragent", true, "apply the user-agent stylesheet")
	flags.StringSlice("css", nil, "additional stylesheet files")
	flags.String("trace", "Error", "trace level [Debug|Info|Error]")
	bind := map[string]string{
		config.P_LAYOUTWIDTH.Key(): "width",
		config.P_FONTSIZE.Key():    "font-size",
		config.P_IMAGESYNC.Key():   "sync-images",
		config.P_USERAGENT.Key():   "useragent",
		"cssbox.stylesheets":       "css",
		"cssbox.tracing":           "trace",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
	root.AddCommand(newDumpCmd(), newRenderCmd(), newShellCmd())
	return root
}

// initializeConfig reads in a config file and environment variables, if set.
func initializeConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("cssbox")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("CSSBOX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("error configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// parameters collects the layout parameters which have been set by the
// config file, the environment or flags.
func parameters() *config.Parameters {
	conf := testconfig.Conf{}
	for _, p := range []config.LayoutParameter{config.P_LAYOUTWIDTH, config.P_FONTSIZE,
		config.P_FONTFAMILY, config.P_TEXTDIRECTION} {
		if key := p.Key(); viper.IsSet(key) && viper.GetString(key) != "" {
			conf[key] = viper.GetString(key)
		}
	}
	for _, p := range []config.LayoutParameter{config.P_IMAGESYNC, config.P_USERAGENT} {
		if key := p.Key(); viper.IsSet(key) {
			conf[key] = viper.GetBool(key)
		}
	}
	return config.FromConfiguration(conf)
}

package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/okian/scribe/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.PlagiarismThreshold, convey.ShouldEqual, 0.75)
				convey.So(cfg.Encoder, convey.ShouldEqual, "local")
				convey.So(cfg.MaxTokens, convey.ShouldEqual, 512)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SCRIBE_PLAGIARISM_THRESHOLD", "0.9")
			_ = os.Setenv("SCRIBE_ENCODER", "ollama")
			_ = os.Setenv("SCRIBE_MAX_TOKENS", "256")
			_ = os.Setenv("SCRIBE_DB_PATH", "/tmp/test-scribe.db")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.PlagiarismThreshold, convey.ShouldEqual, 0.9)
				convey.So(cfg.Encoder, convey.ShouldEqual, "ollama")
				convey.So(cfg.MaxTokens, convey.ShouldEqual, 256)
				convey.So(cfg.DBPath, convey.ShouldEqual, "/tmp/test-scribe.db")
			})
		})

		convey.Convey("When loading config with invalid values", func() {
			_ = os.Setenv("SCRIBE_PLAGIARISM_THRESHOLD", "1.5")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should report an invalid config", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "plagiarism_threshold")
			})
		})

		convey.Convey("When loading config with an unknown encoder", func() {
			_ = os.Setenv("SCRIBE_ENCODER", "bert")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail validation", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"SCRIBE_CONFIG",
		"SCRIBE_LOG_LEVEL",
		"SCRIBE_DB_PATH",
		"SCRIBE_PLAGIARISM_THRESHOLD",
		"SCRIBE_PASS_MARK",
		"SCRIBE_ENCODER",
		"SCRIBE_OLLAMA_URL",
		"SCRIBE_OLLAMA_MODEL",
		"SCRIBE_EMBED_DIMENSIONS",
		"SCRIBE_MAX_TOKENS",
		"SCRIBE_AUDIT_QUEUE_SIZE",
		"SCRIBE_AUDIT_WRITER_COUNT",
		"SCRIBE_MAX_UPLOAD_BYTES",
	} {
		_ = os.Unsetenv(key)
	}
}

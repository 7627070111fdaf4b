package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/msaldanha/nulldev/config"
	"github.com/msaldanha/nulldev/timeline"
)

var _ = Describe("Config", func() {

	var dir string
	envs := []string{config.EnvAPIKey, config.EnvGatewayAddr, config.EnvGatewayURL, config.EnvLogLevel, config.EnvPageSize}

	write := func(content string) string {
		path := filepath.Join(dir, "nulldev.yaml")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		var er error
		dir, er = os.MkdirTemp("", "nulldev-config")
		Expect(er).To(BeNil())
		for _, e := range envs {
			Expect(os.Unsetenv(e)).To(Succeed())
		}
	})

	AfterEach(func() {
		for _, e := range envs {
			_ = os.Unsetenv(e)
		}
		_ = os.RemoveAll(dir)
	})

	It("Should load defaults without a file", func() {
		cfg, er := config.Load("")
		Expect(er).To(BeNil())
		Expect(cfg.Gateway.Addr).To(Equal(":8080"))
		Expect(cfg.Gateway.UpstreamBaseURL).To(Equal("https://api.neople.co.kr/df"))
		Expect(cfg.Viewer.PageSize).To(Equal(100))
		Expect(cfg.Viewer.WindowDays).To(Equal(30))
		Expect(cfg.Viewer.SearchLimit).To(Equal(10))
		Expect(cfg.APIKey).To(BeEmpty())
		Expect(cfg.RequireAPIKey()).To(MatchError(config.ErrInvalidConfig))
	})

	It("Should read the key only from the environment", func() {
		Expect(os.Setenv(config.EnvAPIKey, "from-env")).To(Succeed())
		path := write("gateway:\n  addr: \":9000\"\n")

		cfg, er := config.Load(path)
		Expect(er).To(BeNil())
		Expect(cfg.APIKey).To(Equal("from-env"))
		Expect(cfg.Gateway.Addr).To(Equal(":9000"))
		Expect(cfg.RequireAPIKey()).To(Succeed())

		out := filepath.Join(dir, "saved.yaml")
		Expect(cfg.Save(out)).To(Succeed())
		data, er := os.ReadFile(out)
		Expect(er).To(BeNil())
		Expect(string(data)).ToNot(ContainSubstring("from-env"))
	})

	It("Should let the environment override the file", func() {
		Expect(os.Setenv(config.EnvGatewayURL, "http://gw:1/proxy")).To(Succeed())
		Expect(os.Setenv(config.EnvPageSize, "50")).To(Succeed())
		path := write("viewer:\n  gateway_url: http://file/proxy\n  page_size: 20\n")

		cfg, er := config.Load(path)
		Expect(er).To(BeNil())
		Expect(cfg.Viewer.GatewayURL).To(Equal("http://gw:1/proxy"))
		Expect(cfg.Viewer.PageSize).To(Equal(50))
	})

	It("Should load normalizer rules", func() {
		path := write(`
normalizer:
  rules:
    - code: "505"
      template: "${itemName} 드랍"
      icon_field: itemId
      rarity_fields: [itemRarity]
`)
		cfg, er := config.Load(path)
		Expect(er).To(BeNil())
		Expect(cfg.Normalizer.Rules).To(Equal([]timeline.Rule{{
			Code:         "505",
			Template:     "${itemName} 드랍",
			IconField:    "itemId",
			RarityFields: []string{"itemRarity"},
		}}))
	})

	It("Should reject invalid values", func() {
		_, er := config.Load(write("viewer:\n  page_size: 0\n"))
		Expect(er).To(MatchError(config.ErrInvalidConfig))

		_, er = config.Load(write("logging:\n  level: loud\n"))
		Expect(er).To(MatchError(config.ErrInvalidConfig))

		_, er = config.Load(write("normalizer:\n  rules:\n    - code: \"1\"\n"))
		Expect(er).To(MatchError(config.ErrInvalidConfig))
	})

	It("Should fail on a missing file", func() {
		_, er := config.Load(filepath.Join(dir, "missing.yaml"))
		Expect(er).ToNot(BeNil())
	})
})

package gateway_test

import (
	"context"
	"net/url"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/msaldanha/nulldev/gateway"
)

var _ = Describe("Upstream", func() {

	It("Should build the upstream url with the key last", func() {
		u, er := gateway.NewUpstream("https://api.neople.co.kr/df/", "k", nil)
		Expect(er).To(BeNil())

		params := url.Values{"characterName": {"널 데브"}, "apikey": {"other"}}
		raw := u.URL("/servers/cain/characters", params)

		parsed, er := url.Parse(raw)
		Expect(er).To(BeNil())
		Expect(parsed.Host).To(Equal("api.neople.co.kr"))
		Expect(parsed.Path).To(Equal("/df/servers/cain/characters"))
		Expect(parsed.Query().Get("characterName")).To(Equal("널 데브"))
		Expect(parsed.Query()["apikey"]).To(Equal([]string{"k"}))
		Expect(params.Get("apikey")).To(Equal("other"))
	})

	It("Should reject an invalid base url", func() {
		_, er := gateway.NewUpstream("api.neople.co.kr", "k", nil)
		Expect(er).To(Equal(gateway.ErrInvalidUpstreamURL))
	})

	It("Should not expose the url in transport errors", func() {
		u, er := gateway.NewUpstream("http://127.0.0.1:1/df", "top-secret", nil)
		Expect(er).To(BeNil())

		_, er = u.Get(context.Background(), "servers", nil)
		Expect(er).To(MatchError(gateway.ErrUpstreamUnreachable))
		Expect(er.Error()).ToNot(ContainSubstring("top-secret"))
	})
})

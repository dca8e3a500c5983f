package adapter_test

import (
	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/boardbridge/sync/adapter"
	"github.com/boardbridge/sync/board"
)

var _ = Describe("MockDrawer", func() {
	It("satisfies the Drawer interface and records expected calls", func() {
		ctrl := gomock.NewController(GinkgoT())
		drawer := adapter.NewMockDrawer(ctrl)

		via := &board.Via{Radius: 1}
		via.KIID = "added-in-peer_abc"
		drawer.EXPECT().CreateVia(via).Return("kc-permanent-1", nil)

		var d adapter.Drawer = drawer
		kiid, err := d.CreateVia(via)
		Expect(err).NotTo(HaveOccurred())
		Expect(kiid).To(Equal("kc-permanent-1"))
	})
})

var _ = Describe("MockScanner", func() {
	It("satisfies the Scanner interface", func() {
		ctrl := gomock.NewController(GinkgoT())
		scanner := adapter.NewMockScanner(ctrl)

		b := board.NewBoard()
		scanner.EXPECT().Scan().Return(b, nil)

		var s adapter.Scanner = scanner
		got, err := s.Scan()
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeIdenticalTo(b))
	})
})

package graph_test

import (
	. "code.cloudfoundry.org/acl/graph"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type testNode string

func (n testNode) NodeID() NodeID {
	return NodeID(n)
}

var _ = Describe("Graph", func() {
	var subject *Graph

	BeforeEach(func() {
		subject = New()
	})

	Describe("#AddNode", func() {
		It("inserts a root node", func() {
			Expect(subject.AddNode(testNode("a"))).To(Succeed())

			Expect(subject.NodeExists("a")).To(BeTrue())
		})

		It("inserts a node under multiple parents", func() {
			Expect(subject.AddNode(testNode("a"))).To(Succeed())
			Expect(subject.AddNode(testNode("b"))).To(Succeed())
			Expect(subject.AddNode(testNode("c"), "a", "b")).To(Succeed())

			children, err := subject.Children("a")
			Expect(err).NotTo(HaveOccurred())
			Expect(children).To(ConsistOf(testNode("c")))
		})

		It("rejects a duplicate node", func() {
			Expect(subject.AddNode(testNode("a"))).To(Succeed())

			Expect(subject.AddNode(testNode("a"))).To(Equal(ErrDuplicateNode))
		})

		It("rejects an unknown parent without mutating the graph", func() {
			Expect(subject.AddNode(testNode("a"))).To(Succeed())

			err := subject.AddNode(testNode("b"), "a", "missing")

			Expect(err).To(Equal(ErrNodeNotFound))
			Expect(subject.NodeExists("b")).To(BeFalse())

			children, err := subject.Children("a")
			Expect(err).NotTo(HaveOccurred())
			Expect(children).To(BeEmpty())
		})

		It("rejects a self-parent", func() {
			Expect(subject.AddNode(testNode("a"), "a")).To(Equal(ErrCycleDetected))
		})

		It("collapses duplicate parents to one edge", func() {
			Expect(subject.AddNode(testNode("a"))).To(Succeed())
			Expect(subject.AddNode(testNode("b"), "a", "a")).To(Succeed())

			children, err := subject.Children("a")
			Expect(err).NotTo(HaveOccurred())
			Expect(children).To(HaveLen(1))
		})
	})

	Describe("#AddEdge", func() {
		BeforeEach(func() {
			Expect(subject.AddNode(testNode("a"))).To(Succeed())
			Expect(subject.AddNode(testNode("b"), "a")).To(Succeed())
			Expect(subject.AddNode(testNode("c"), "b")).To(Succeed())
		})

		It("links an existing child to an existing parent", func() {
			Expect(subject.AddNode(testNode("d"))).To(Succeed())

			Expect(subject.AddEdge("c", "d")).To(Succeed())

			ancestors, err := subject.Ancestors("c")
			Expect(err).NotTo(HaveOccurred())
			Expect(ancestors).To(ContainElement(testNode("d")))
		})

		It("rejects an edge that would close a cycle", func() {
			Expect(subject.AddEdge("a", "c")).To(Equal(ErrCycleDetected))
		})

		It("rejects unknown endpoints", func() {
			Expect(subject.AddEdge("missing", "a")).To(Equal(ErrNodeNotFound))
			Expect(subject.AddEdge("a", "missing")).To(Equal(ErrNodeNotFound))
		})
	})

	Describe("#Ancestors", func() {
		It("walks backward breadth-first, the node itself first", func() {
			Expect(subject.AddNode(testNode("root"))).To(Succeed())
			Expect(subject.AddNode(testNode("mid"), "root")).To(Succeed())
			Expect(subject.AddNode(testNode("leaf"), "mid")).To(Succeed())

			ancestors, err := subject.Ancestors("leaf")

			Expect(err).NotTo(HaveOccurred())
			Expect(ancestors).To(Equal([]Node{testNode("leaf"), testNode("mid"), testNode("root")}))
		})

		It("visits a diamond's shared ancestor once", func() {
			Expect(subject.AddNode(testNode("top"))).To(Succeed())
			Expect(subject.AddNode(testNode("left"), "top")).To(Succeed())
			Expect(subject.AddNode(testNode("right"), "top")).To(Succeed())
			Expect(subject.AddNode(testNode("bottom"), "left", "right")).To(Succeed())

			ancestors, err := subject.Ancestors("bottom")

			Expect(err).NotTo(HaveOccurred())
			Expect(ancestors).To(HaveLen(4))
			Expect(ancestors[0]).To(Equal(testNode("bottom")))
			Expect(ancestors[3]).To(Equal(testNode("top")))
			Expect(ancestors[1:3]).To(ConsistOf(testNode("left"), testNode("right")))
		})

		It("fails for an unknown node", func() {
			_, err := subject.Ancestors("missing")

			Expect(err).To(Equal(ErrNodeNotFound))
		})
	})

	Describe("#DeleteNode", func() {
		BeforeEach(func() {
			Expect(subject.AddNode(testNode("a"))).To(Succeed())
			Expect(subject.AddNode(testNode("b"), "a")).To(Succeed())
			Expect(subject.AddNode(testNode("c"), "b")).To(Succeed())
		})

		It("rejects a restricted delete of a node with children", func() {
			Expect(subject.DeleteNode("a", false)).To(Equal(ErrHasChildren))

			Expect(subject.NodeExists("a")).To(BeTrue())
			Expect(subject.NodeExists("b")).To(BeTrue())
		})

		It("deletes a leaf and unlinks it from its parent", func() {
			Expect(subject.DeleteNode("c", false)).To(Succeed())

			Expect(subject.NodeExists("c")).To(BeFalse())

			children, err := subject.Children("b")
			Expect(err).NotTo(HaveOccurred())
			Expect(children).To(BeEmpty())
		})

		It("removes the descendant closure with cascade", func() {
			Expect(subject.DeleteNode("a", true)).To(Succeed())

			Expect(subject.NodeExists("a")).To(BeFalse())
			Expect(subject.NodeExists("b")).To(BeFalse())
			Expect(subject.NodeExists("c")).To(BeFalse())
			Expect(subject.Nodes()).To(BeEmpty())
		})

		It("keeps a descendant's other parent intact after cascade", func() {
			Expect(subject.AddNode(testNode("other"))).To(Succeed())
			Expect(subject.AddEdge("c", "other")).To(Succeed())

			Expect(subject.DeleteNode("a", true)).To(Succeed())

			Expect(subject.NodeExists("other")).To(BeTrue())
			children, err := subject.Children("other")
			Expect(err).NotTo(HaveOccurred())
			Expect(children).To(BeEmpty())
		})

		It("fails for an unknown node", func() {
			Expect(subject.DeleteNode("missing", false)).To(Equal(ErrNodeNotFound))
		})
	})

	Describe("#GetNode", func() {
		It("returns the stored node", func() {
			Expect(subject.AddNode(testNode("a"))).To(Succeed())

			node, err := subject.GetNode("a")

			Expect(err).NotTo(HaveOccurred())
			Expect(node).To(Equal(testNode("a")))
		})

		It("fails for an unknown id", func() {
			_, err := subject.GetNode("missing")

			Expect(err).To(Equal(ErrNodeNotFound))
		})
	})

	Describe("#DOT", func() {
		It("is deterministic and edge-complete", func() {
			Expect(subject.AddNode(testNode("b"))).To(Succeed())
			Expect(subject.AddNode(testNode("a"), "b")).To(Succeed())

			out := subject.DOT("hierarchy")

			Expect(out).To(Equal("digraph \"hierarchy\" {\n    \"a\";\n    \"b\";\n    \"a\" -> \"b\";\n}\n"))
		})
	})
})

package logging_test

import (
	. "code.cloudfoundry.org/acl/logging"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gbytes"
)

var _ = Describe("CEFLogger", func() {
	var (
		logOutput *Buffer
		logger    *CEFLogger
	)

	BeforeEach(func() {
		logOutput = NewBuffer()
		logger = NewCEFLogger(logOutput, "cloud_foundry", "unittest", "0.0.1", "hook")
	})

	Describe("#Log", func() {
		It("logs the signature, name, and destination hostname", func() {
			logger.Log("acl.decision", "allowed")

			Eventually(logOutput).Should(Say("acl.decision"))
			Eventually(logOutput).Should(Say("allowed"))
			Eventually(logOutput).Should(Say("dst=hook"))
		})

		Context("when there are custom extensions", func() {
			It("logs each extension", func() {
				logger.Log("acl.decision", "allowed",
					CustomExtension{Key: "user", Value: "bob"},
					CustomExtension{Key: "permission", Value: "edit"},
				)

				Eventually(logOutput).Should(Say("cs1Label=user"))
				Eventually(logOutput).Should(Say("cs1=bob"))
				Eventually(logOutput).Should(Say("cs2Label=permission"))
				Eventually(logOutput).Should(Say("cs2=edit"))
			})

			It("reports an invalid extension in the msg field", func() {
				logger.Log("acl.decision", "allowed", CustomExtension{Key: "", Value: "bob"})

				Eventually(logOutput).Should(Say("msg=ERROR:invalid-custom-extension;"))
			})

			It("caps the extensions at six and reports the overflow", func() {
				var args []CustomExtension
				for _, key := range []string{"a", "b", "c", "d", "e", "f", "g"} {
					args = append(args, CustomExtension{Key: key, Value: key})
				}

				logger.Log("acl.decision", "allowed", args...)

				Eventually(logOutput).Should(Say("cs6Label=f"))
				Eventually(logOutput).Should(Say("msg=ERROR:too-many-custom-extensions;"))
			})
		})
	})
})

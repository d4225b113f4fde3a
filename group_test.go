package acl_test

import (
	"code.cloudfoundry.org/acl"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	uuid "github.com/satori/go.uuid"
)

var _ = Describe("Group", func() {
	var group *acl.Group

	BeforeEach(func() {
		group = acl.NewGroup(acl.GroupID(uuid.NewV4().String()), "")
	})

	BehavesLikeAServiceCollection(func() serviceCollection {
		return acl.NewGroup(acl.GroupID(uuid.NewV4().String()), "")
	})

	Describe("#AddUsers", func() {
		It("records membership idempotently", func() {
			user := acl.NewUser(acl.UserID(uuid.NewV4().String()), "")

			Expect(group.AddUsers(user)).To(Succeed())
			Expect(group.AddUsers(user)).To(Succeed())

			Expect(group.Users()).To(HaveLen(1))
			Expect(group.UserExists(user)).To(BeTrue())
		})

		It("fails on a nil element but keeps prior progress", func() {
			user := acl.NewUser(acl.UserID(uuid.NewV4().String()), "")

			err := group.AddUsers(user, nil)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Group.AddUsers"))
			Expect(err.Error()).To(ContainSubstring("argument 1"))
			Expect(group.UserExists(user)).To(BeTrue())
		})
	})

	Describe("#DeleteUsers", func() {
		It("removes membership and tolerates absent users", func() {
			user := acl.NewUser(acl.UserID(uuid.NewV4().String()), "")

			Expect(group.AddUsers(user)).To(Succeed())
			group.DeleteUsers(user)
			group.DeleteUsers(user)

			Expect(group.UserExists(user)).To(BeFalse())
		})
	})

	Describe("#GetUser", func() {
		It("returns the member by bare id", func() {
			user := acl.NewUser("alice", "")

			Expect(group.AddUsers(user)).To(Succeed())

			found, err := group.GetUser(acl.UserID("alice"))
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeIdenticalTo(user))
		})

		It("fails if the user is not a member", func() {
			_, err := group.GetUser(acl.UserID(uuid.NewV4().String()))

			Expect(err).To(Equal(acl.ErrUserNotFound))
		})
	})

	Describe("#AddPermissions", func() {
		It("grants idempotently", func() {
			permission := acl.NewPermission(acl.PermissionID(uuid.NewV4().String()), "")

			Expect(group.AddPermissions(permission)).To(Succeed())
			Expect(group.AddPermissions(permission)).To(Succeed())

			Expect(group.Permissions()).To(HaveLen(1))
			Expect(group.PermissionExists(permission)).To(BeTrue())
		})

		It("fails on an empty-identity element", func() {
			err := group.AddPermissions(acl.Permission{})

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Group.AddPermissions"))
		})
	})

	Describe("#DeletePermissions", func() {
		It("revokes and tolerates absent permissions", func() {
			permission := acl.NewPermission(acl.PermissionID(uuid.NewV4().String()), "")

			Expect(group.AddPermissions(permission)).To(Succeed())
			group.DeletePermissions(permission)
			group.DeletePermissions(permission)

			Expect(group.PermissionExists(permission)).To(BeFalse())
		})
	})

	Describe("#Permissions", func() {
		It("returns a read-only snapshot sorted by id", func() {
			first := acl.NewPermission("a", "")
			second := acl.NewPermission("b", "")

			Expect(group.AddPermissions(second, first)).To(Succeed())

			snapshot := group.Permissions()
			Expect(snapshot).To(HaveLen(2))
			Expect(snapshot[0].ID()).To(Equal(acl.PermissionID("a")))
			Expect(snapshot[1].ID()).To(Equal(acl.PermissionID("b")))

			snapshot[0] = acl.Permission{}
			Expect(group.PermissionExists(first)).To(BeTrue())
		})
	})

	Describe("#GetPermission", func() {
		It("fails if the permission is not granted", func() {
			_, err := group.GetPermission(acl.PermissionID(uuid.NewV4().String()))

			Expect(err).To(Equal(acl.ErrPermissionNotFound))
		})
	})
})

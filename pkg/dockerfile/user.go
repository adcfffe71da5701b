package dockerfile

import "strconv"

// CreateUser emits the instructions creating a non-root user with the given
// numeric IDs and passwordless sudo. The IDs are declared as UID and GID
// build arguments defaulting to the given values, and every creation and
// removal command references the arguments, so docker build
// --build-arg=UID=... can retarget the image to another host. The preamble
// frees the requested IDs: a pre-existing group is removed by GID, a
// pre-existing user by UID alone, since the two IDs may legitimately differ
// on the host.
//
// An ID of 0 is root: no user or group creation is emitted at all, the
// image keeps its default root user.
func (f *Fragment) CreateUser(name string, uid int, gid int) error {
	if uid == 0 || gid == 0 {
		return nil
	}

	steps := []error{
		f.ArgDefault("USER_NAME", name),
		f.ArgDefault("UID", strconv.Itoa(uid)),
		f.ArgDefault("GID", strconv.Itoa(gid)),
		f.Comment("Remove group with gid=${GID} if it already exists."),
		f.Append(DeleteGroupByGID{GID: "${GID}"}),
		f.Comment("Remove user with uid=${UID} if it already exists."),
		f.Append(DeleteUserByUID{UID: "${UID}"}),
		f.Append(AddGroup{Name: name, GID: "${GID}"}),
		f.Append(AddUser{Name: name, UID: "${UID}", GID: "${GID}"}),
		f.Run("adduser " + name + " sudo"),
		f.Run("echo '%sudo ALL=(ALL) NOPASSWD:ALL' >> /etc/sudoers"),
		f.Run(`echo "` + name + ` ALL=(ALL) NOPASSWD:ALL" > /etc/sudoers.d/10-docker`),
	}
	for _, err := range steps {
		if err != nil {
			return err
		}
	}
	return nil
}

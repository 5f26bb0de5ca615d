// Package server implements the control-connection command dispatcher,
// session state machine, passive data-channel lifecycle, and virtual-
// filesystem authorization layer of an RFC 959 FTP server with the RFC 3659
// MLSD/MLST listing extensions.
//
// The server never touches a concrete filesystem: every path operation a
// command handler needs goes through the pathio.PathIO capability supplied
// at construction time (see WithPathIO), and every path is authorized
// against a user's ordered permission list (see Permission and
// User.GetPermissions) before it is listed, stat'ed, created, removed or
// entered. Existence and directory checks run before the permission check.
//
// Basic example:
//
//	fs := pathio.NewAferoPathIO(afero.NewOsFs())
//	users := []*server.User{
//	    {Login: nil, BasePath: "/srv/ftp/anon", HomePath: "/"}, // anonymous
//	}
//	s, err := server.NewServer(server.WithPathIO(fs), server.WithUsers(users))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(s.ListenAndServe(":21"))
package server

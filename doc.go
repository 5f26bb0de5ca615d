// Command ftpd and its supporting packages implement the control-plane of
// an RFC 959/RFC 3659 FTP server: session dispatch, passive data channels,
// and virtual-filesystem permission resolution. See package server for the
// implementation and package pathio for the filesystem capability it is
// built against.
package ftpd

// Package discovery announces and finds maskedit servers with mDNS.
//
// "maskedit serve" advertises a "_maskedit._tcp" service whose TXT records
// carry the server version, the WebSocket path and the profile names.
// "maskedit scan" browses for that service type and lists what answers.
//
// # Network Requirements
//
//   - Requires multicast support on the network interface
//   - Hosts must be on the same local network segment
//   - Firewall must allow mDNS (UDP port 5353)
package discovery

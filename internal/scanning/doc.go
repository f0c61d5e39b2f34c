// Package scanning turns nmap XML result files into the plain host records
// the report builders consume.
//
// Decoding is done against the github.com/Ullaakut/nmap/v3 result model so the
// XML layout is owned by that library. This package only flattens what the
// reports need: the host address and state, the reported ports with their
// service descriptor, and the OS match candidates in the order nmap ranked them.
//
// # Usage
//
//	res, err := scanning.LoadFile("scan.xml")
//	if err != nil {
//		return err
//	}
//	for _, host := range res.Hosts {
//		if !host.IsUp() {
//			continue
//		}
//		fmt.Println(host.Address, len(host.Ports))
//	}
//
// Records are immutable after conversion; nothing here keeps state between
// calls.
package scanning

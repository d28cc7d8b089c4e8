// Package devbox drives the 96Boards Developerbox (Synquacer E-series)
// debug UART bridge as a software SPI master. The board's debug UART is a
// CP2102N USB-to-UART bridge whose four GPIO pins can be wired to the
// on-board SPI NOR flash, which allows emergency de-bricking without a
// dedicated programmer. Bit-banging over USB control transfers is extremely
// slow, so this is a recovery path, not a production one.
//
// To route the GPIO pins to the flash, DSW4 must be changed from the
// default 00000000 to 10001000 (DSW4-1 and DSW4-5 on).
//
// # References:
//
// Silicon Labs (https://www.silabs.com/documents/public/application-notes/)
//   - [AN571]: CP210x Virtual COM Port Interface (vendor-specific requests, GPIO latch read/write)
//   - [CP2102N]: CP2102N Data Sheet (https://www.silabs.com/documents/public/data-sheets/cp2102n-datasheet.pdf)
//
// 96Boards
//   - [Developerbox]: hardware documentation and schematic (https://www.96boards.org/documentation/enterprise/developerbox/hardware-docs/)
package devbox

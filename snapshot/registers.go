// This file is part of spamdbg.
//
// spamdbg is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// spamdbg is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with spamdbg.  If not, see <https://www.gnu.org/licenses/>.

package snapshot

import "fmt"

// Registers is the register file of the SPAM-1 CPU as reported by the
// simulator. All registers are 8 bits wide. Clk and PC are copies of the
// simulator's own counters at the time the register file was sampled.
type Registers struct {
	Clk int `yaml:"clk" json:"clk"`
	PC  int `yaml:"pc" json:"pc"`

	PCHiTmp uint8 `yaml:"pchitmp" json:"pchitmp"`
	PCHi    uint8 `yaml:"pchi" json:"pchi"`
	PCLo    uint8 `yaml:"pclo" json:"pclo"`
	MARHi   uint8 `yaml:"marhi" json:"marhi"`
	MARLo   uint8 `yaml:"marlo" json:"marlo"`
	RegA    uint8 `yaml:"rega" json:"rega"`
	RegB    uint8 `yaml:"regb" json:"regb"`
	RegC    uint8 `yaml:"regc" json:"regc"`
	RegD    uint8 `yaml:"regd" json:"regd"`
	PortSel uint8 `yaml:"portsel" json:"portsel"`
	Timer1  uint8 `yaml:"timer1" json:"timer1"`
	Halt    uint8 `yaml:"halt" json:"halt"`
	ALU     uint8 `yaml:"alu" json:"alu"`
}

// ProgramAddress is the 16 bit address formed by the program counter high and
// low registers.
func (r Registers) ProgramAddress() uint16 {
	return uint16(r.PCHi)<<8 | uint16(r.PCLo)
}

// MAR is the 16 bit address formed by the memory address register high and
// low registers.
func (r Registers) MAR() uint16 {
	return uint16(r.MARHi)<<8 | uint16(r.MARLo)
}

// Halted returns true if the halt register is high.
func (r Registers) Halted() bool {
	return r.Halt != 0
}

func (r Registers) String() string {
	return fmt.Sprintf("pc=%#04x mar=%#04x a=%#02x b=%#02x c=%#02x d=%#02x halt=%#02x",
		r.ProgramAddress(), r.MAR(), r.RegA, r.RegB, r.RegC, r.RegD, r.Halt)
}

// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package spectral

// Band centre wavelengths in nanometres, in the order the bands appear in the
// surface reflectance products.

// PACEWavelengths - PACE OCI surface reflectance (v3), all 122 bands
var PACEWavelengths = []float64{
	346, 351, 356, 361, 366, 371, 375, 380, 385, 390,
	395, 400, 405, 410, 415, 420, 425, 430, 435, 440,
	445, 450, 455, 460, 465, 470, 475, 480, 485, 490,
	495, 500, 505, 510, 515, 520, 525, 530, 535, 540,
	545, 550, 555, 560, 565, 570, 575, 580, 586, 615,
	620, 625, 630, 635, 640, 642, 645, 647, 650, 652,
	655, 657, 660, 662, 665, 667, 670, 672, 675, 677,
	679, 682, 697, 699, 702, 704, 707, 709, 712, 714,
	719, 724, 729, 734, 739, 742, 744, 747, 749, 752,
	754, 772, 774, 779, 784, 789, 794, 799, 804, 809,
	814, 819, 824, 829, 835, 840, 845, 850, 855, 860,
	865, 870, 875, 880, 885, 890, 895, 1038, 1249, 1618,
	2131, 2258,
}

// PACEVNIRWavelengths - the first 117 PACE OCI bands, leaving out the 5 SWIR bands
var PACEVNIRWavelengths = PACEWavelengths[:117:117]

// MODISEquivalentWavelengths - PACE OCI bands closest to MODIS bands 3,4,1,2,5,7 (MODIS band 6 has no equivalent)
var MODISEquivalentWavelengths = []float64{
	470, 555, 645, 860, 1249, 2131,
}

// MODISWavelengths - actual MODIS centre wavelengths for the same 6 bands
var MODISWavelengths = []float64{
	469, 555, 645, 859, 1240, 2130,
}

// EMITWavelengths - ISS EMIT L2A reflectance, all 285 bands
var EMITWavelengths = []float64{
	381.00558, 388.4092, 395.81583, 403.2254, 410.638, 418.0536, 425.47214, 432.8927,
	440.31726, 447.7428, 455.17035, 462.59888, 470.0304, 477.46292, 484.89743, 492.33292,
	499.77142, 507.2099, 514.6504, 522.0909, 529.5333, 536.9768, 544.42126, 551.8667,
	559.3142, 566.7616, 574.20905, 581.6585, 589.108, 596.55835, 604.0098, 611.4622,
	618.9146, 626.36804, 633.8215, 641.2759, 648.7303, 656.1857, 663.6411, 671.09753,
	678.5539, 686.0103, 693.4677, 700.9251, 708.38354, 715.84094, 723.2993, 730.7587,
	738.2171, 745.6765, 753.1359, 760.5963, 768.0557, 775.5161, 782.97754, 790.4379,
	797.89935, 805.36176, 812.8232, 820.2846, 827.746, 835.2074, 842.66986, 850.1313,
	857.5937, 865.0551, 872.5176, 879.98004, 887.44147, 894.90393, 902.3664, 909.82886,
	917.2913, 924.7538, 932.21625, 939.6788, 947.14026, 954.6027, 962.0643, 969.5268,
	976.9883, 984.4498, 991.9114, 999.37286, 1006.8344, 1014.295, 1021.7566, 1029.2172,
	1036.6777, 1044.1383, 1051.5989, 1059.0596, 1066.5201, 1073.9797, 1081.4404, 1088.9,
	1096.3597, 1103.8184, 1111.2781, 1118.7368, 1126.1964, 1133.6552, 1141.1129, 1148.5717,
	1156.0304, 1163.4882, 1170.9459, 1178.4037, 1185.8616, 1193.3184, 1200.7761, 1208.233,
	1215.6898, 1223.1467, 1230.6036, 1238.0596, 1245.5154, 1252.9724, 1260.4283, 1267.8833,
	1275.3392, 1282.7942, 1290.2502, 1297.7052, 1305.1603, 1312.6144, 1320.0685, 1327.5225,
	1334.9756, 1342.4287, 1349.8818, 1357.3351, 1364.7872, 1372.2384, 1379.6907, 1387.1418,
	1394.5931, 1402.0433, 1409.4937, 1416.944, 1424.3933, 1431.8427, 1439.292, 1446.7404,
	1454.1888, 1461.6372, 1469.0847, 1476.5321, 1483.9796, 1491.4261, 1498.8727, 1506.3192,
	1513.7649, 1521.2104, 1528.655, 1536.1007, 1543.5454, 1550.9891, 1558.4329, 1565.8766,
	1573.3193, 1580.7621, 1588.205, 1595.6467, 1603.0886, 1610.5295, 1617.9705, 1625.4104,
	1632.8513, 1640.2903, 1647.7303, 1655.1694, 1662.6074, 1670.0455, 1677.4836, 1684.9209,
	1692.358, 1699.7952, 1707.2314, 1714.6667, 1722.103, 1729.5383, 1736.9727, 1744.4071,
	1751.8414, 1759.2749, 1766.7084, 1774.1418, 1781.5743, 1789.007, 1796.4385, 1803.8701,
	1811.3008, 1818.7314, 1826.1611, 1833.591, 1841.0206, 1848.4495, 1855.8773, 1863.3052,
	1870.733, 1878.16, 1885.5869, 1893.013, 1900.439, 1907.864, 1915.2892, 1922.7133,
	1930.1375, 1937.5607, 1944.9839, 1952.4071, 1959.8295, 1967.2518, 1974.6732, 1982.0946,
	1989.515, 1996.9355, 2004.355, 2011.7745, 2019.1931, 2026.6118, 2034.0304, 2041.4471,
	2048.865, 2056.2808, 2063.6965, 2071.1123, 2078.5273, 2085.9421, 2093.3562, 2100.769,
	2108.1821, 2115.5942, 2123.0063, 2130.4175, 2137.8289, 2145.239, 2152.6482, 2160.0576,
	2167.467, 2174.8755, 2182.283, 2189.6904, 2197.097, 2204.5034, 2211.9092, 2219.3147,
	2226.7195, 2234.1233, 2241.5269, 2248.9297, 2256.3328, 2263.7346, 2271.1365, 2278.5376,
	2285.9387, 2293.3386, 2300.7378, 2308.136, 2315.5342, 2322.9326, 2330.3298, 2337.7263,
	2345.1216, 2352.517, 2359.9126, 2367.3071, 2374.7007, 2382.0935, 2389.486, 2396.878,
	2404.2695, 2411.6604, 2419.0513, 2426.4402, 2433.8303, 2441.2183, 2448.6064, 2455.9944,
	2463.3816, 2470.7678, 2478.153, 2485.5386, 2492.9238,
}

// HyperionWavelengths - EO-1 Hyperion calibrated bands (2000-2017). Note the
// VNIR and SWIR detectors overlap around 900-1000nm so this is not monotonic.
var HyperionWavelengths = []float64{
	426.8200, 436.9900, 447.1700, 457.3400, 467.5200, 477.6900, 487.8700, 498.0400,
	508.2200, 518.3900, 528.5700, 538.7400, 548.9200, 559.0900, 569.2700, 579.4500,
	589.6200, 599.8000, 609.9700, 620.1500, 630.3200, 640.5000, 650.6700, 660.8500,
	671.0200, 681.2000, 691.3700, 701.5500, 711.7200, 721.9000, 732.0700, 742.2500,
	752.4300, 762.6000, 772.7800, 782.9500, 793.1300, 803.3000, 813.4800, 823.6500,
	833.8300, 844.0000, 854.1800, 864.3500, 874.5300, 884.7000, 894.8800, 905.0500,
	915.2300, 925.4100, 912.4500, 922.5400, 932.6400, 942.7300, 952.8200, 962.9100,
	972.9900, 983.0800, 993.1700, 1003.300, 1013.300, 1023.400, 1033.490, 1043.590,
	1053.690, 1063.790, 1073.890, 1083.990, 1094.090, 1104.190, 1114.190, 1124.280,
	1134.3800, 1144.4800, 1154.5800, 1164.6800, 1174.7700, 1184.8700, 1194.9700, 1205.0700,
	1215.1700, 1225.1700, 1235.2700, 1245.3600, 1255.4600, 1265.5600, 1275.6600, 1285.7600,
	1295.8600, 1305.9600, 1316.0500, 1326.0500, 1336.1500, 1346.2500, 1356.3500, 1366.4500,
	1376.5500, 1386.6500, 1396.7400, 1406.8400, 1416.9400, 1426.9400, 1437.0400, 1447.1400,
	1457.2300, 1467.3300, 1477.4300, 1487.5300, 1497.6300, 1507.7300, 1517.8300, 1527.9200,
	1537.9200, 1548.0200, 1558.1200, 1568.2200, 1578.3200, 1588.4200, 1598.5100, 1608.6100,
	1618.7100, 1628.8100, 1638.8100, 1648.9000, 1659.0000, 1669.1000, 1679.2000, 1689.3000,
	1699.4000, 1709.5000, 1719.6000, 1729.7000, 1739.7000, 1749.7900, 1759.8900, 1769.9900,
	1780.0900, 1790.1900, 1800.2900, 1810.3800, 1820.4800, 1830.5800, 1840.5800, 1850.6800,
	1860.7800, 1870.8700, 1880.9800, 1891.0700, 1901.1700, 1911.2700, 1921.3700, 1931.4700,
	1941.5700, 1951.5700, 1961.6600, 1971.7600, 1981.8600, 1991.9600, 2002.0600, 2012.1500,
	2022.2500, 2032.3500, 2042.4500, 2052.4500, 2062.5500, 2072.6500, 2082.7500, 2092.8400,
	2102.9400, 2113.0400, 2123.1400, 2133.2400, 2143.3400, 2153.3400, 2163.4300, 2173.5300,
	2183.6300, 2193.7300, 2203.8300, 2213.9300, 2224.0300, 2234.1200, 2244.2200, 2254.2200,
	2264.3200, 2274.4200, 2284.5200, 2294.6100, 2304.7100, 2314.8100, 2324.9100, 2335.0100,
	2345.1100, 2355.2100, 2365.2000, 2375.3000, 2385.4000, 2395.5000,
}
